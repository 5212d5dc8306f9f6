package repository

import (
	"context"
	"time"

	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
)

// SaleRepository puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	// Create falla con ConflictError si el número de venta ya existe.
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	// GetByID incluye las líneas; nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetForUpdate igual que GetByID pero bloquea la cabecera.
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error
	// List sin líneas; status vacío = todos. Devuelve también el total de filas.
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Sale, int, error)
	// Delete elimina cabecera y líneas (cascade); el historial conserva sus filas con sale_id NULL.
	Delete(ctx context.Context, id string) error
}
