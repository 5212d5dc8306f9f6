package repository

import (
	"context"

	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
)

// StockHistoryRepository puerto del historial append-only (no hay Update ni Delete).
type StockHistoryRepository interface {
	Create(ctx context.Context, history *entity.StockHistory) error
	// ListByRadiator más reciente primero; warehouseID vacío = todas las bodegas.
	ListByRadiator(ctx context.Context, radiatorID, warehouseID string, limit, offset int) ([]*entity.StockHistory, error)
	ListBySale(ctx context.Context, saleID string) ([]*entity.StockHistory, error)
}
