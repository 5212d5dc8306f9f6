package repository

import (
	"context"

	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
// Los Get devuelven (nil, nil) cuando no existe la fila.
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	GetByCode(ctx context.Context, code string) (*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error)
	// Delete falla con ConflictError si la bodega tiene stock o historial.
	Delete(ctx context.Context, id string) error
}
