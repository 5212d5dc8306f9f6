package repository

import (
	"context"

	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
)

// StockLevelRepository define el puerto para leer/actualizar la cantidad por radiador+bodega.
// Usado dentro de transacciones para garantizar consistencia.
type StockLevelRepository interface {
	// GetForUpdate crea la fila en cero si no existe y la bloquea (SELECT FOR UPDATE)
	// hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, radiatorID, warehouseID string) (*entity.StockLevel, error)
	// Get devuelve nil si el par aún no tiene fila.
	Get(ctx context.Context, radiatorID, warehouseID string) (*entity.StockLevel, error)
	Update(ctx context.Context, level *entity.StockLevel) error
	ListByRadiator(ctx context.Context, radiatorID string) ([]*entity.StockLevel, error)
	SumByRadiator(ctx context.Context, radiatorID string) (int, error)
}
