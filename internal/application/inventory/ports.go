package inventory

import (
	"context"

	"github.com/jhoicas/radiator-inventory/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que el cambio de cantidad y su historial se confirmen juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockLevelRepository,
		historyRepo repository.StockHistoryRepository,
	) error) error
}

// Metrics puerto de observabilidad del libro de stock.
type Metrics interface {
	ObserveMovement(movementType, changeType string, delta int)
	ObserveRejection(operation, reason string)
}

type nopMetrics struct{}

func (nopMetrics) ObserveMovement(string, string, int) {}
func (nopMetrics) ObserveRejection(string, string)     {}

// NopMetrics implementación vacía para tests y despliegues sin /metrics.
var NopMetrics Metrics = nopMetrics{}
