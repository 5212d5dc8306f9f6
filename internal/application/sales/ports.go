package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
	"github.com/jhoicas/radiator-inventory/internal/domain/repository"
)

// SalesTxRunner ejecuta una función dentro de una transacción que incluye repos de stock y ventas.
type SalesTxRunner interface {
	RunSale(ctx context.Context, fn func(
		stockRepo repository.StockLevelRepository,
		historyRepo repository.StockHistoryRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// StockLedger interfaz para integrar ventas con el libro de stock.
// Ambos métodos usan los repositorios del caller (misma transacción); si retornan error
// el caller debe hacer rollback.
type StockLedger interface {
	DecrementForSale(
		ctx context.Context,
		stockRepo repository.StockLevelRepository,
		historyRepo repository.StockHistoryRepository,
		radiatorID, warehouseID string,
		quantity int,
		saleID, userID string,
		now time.Time,
	) (*entity.StockHistory, error)
	RestockForSale(
		ctx context.Context,
		stockRepo repository.StockLevelRepository,
		historyRepo repository.StockHistoryRepository,
		radiatorID, warehouseID string,
		quantity int,
		saleID, userID, changeType string,
		now time.Time,
	) (*entity.StockHistory, error)
}

// Metrics puerto de observabilidad de ventas.
type Metrics interface {
	ObserveSale(status string, total decimal.Decimal)
	ObserveRejection(operation, reason string)
}

type nopMetrics struct{}

func (nopMetrics) ObserveSale(string, decimal.Decimal) {}
func (nopMetrics) ObserveRejection(string, string)     {}

// NopMetrics implementación vacía.
var NopMetrics Metrics = nopMetrics{}

// ReceiptLine línea del recibo con los nombres ya resueltos.
type ReceiptLine struct {
	entity.SaleItem
	RadiatorCode  string
	RadiatorName  string
	WarehouseCode string
}

// ReceiptGenerator genera la representación PDF de una venta.
type ReceiptGenerator interface {
	GenerateReceipt(
		ctx context.Context,
		sale *entity.Sale,
		customer *entity.Customer,
		lines []ReceiptLine,
	) ([]byte, error)
}
