package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
	"github.com/jhoicas/radiator-inventory/internal/domain/repository"
)

var _ repository.StockHistoryRepository = (*StockHistoryRepo)(nil)

const historyColumns = `id, radiator_id, warehouse_id, old_quantity, new_quantity, quantity_change,
	movement_type, change_type, sale_id, updated_by, created_at`

// StockHistoryRepo historial append-only sobre PostgreSQL (usable con pool o tx).
type StockHistoryRepo struct {
	q Querier
}

// NewStockHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockHistoryRepository(q Querier) *StockHistoryRepo {
	return &StockHistoryRepo{q: q}
}

// Create inserta un registro del historial.
func (r *StockHistoryRepo) Create(ctx context.Context, h *entity.StockHistory) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_history (` + historyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		h.ID, h.RadiatorID, h.WarehouseID, h.OldQuantity, h.NewQuantity, h.QuantityChange,
		h.MovementType, h.ChangeType, h.SaleID, h.UpdatedBy, h.CreatedAt,
	)
	if err != nil {
		return mapWriteError("stock_history", "create stock history", err)
	}
	return nil
}

// ListByRadiator más reciente primero; warehouseID vacío = todas las bodegas.
func (r *StockHistoryRepo) ListByRadiator(ctx context.Context, radiatorID, warehouseID string, limit, offset int) ([]*entity.StockHistory, error) {
	query := `SELECT ` + historyColumns + ` FROM stock_history WHERE radiator_id = $1`
	args := []any{radiatorID}
	pos := 2
	if warehouseID != "" {
		query += fmt.Sprintf(" AND warehouse_id = $%d", pos)
		args = append(args, warehouseID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.list(ctx, "list history by radiator", query, args...)
}

// ListBySale movimientos generados por una venta, en orden de creación.
func (r *StockHistoryRepo) ListBySale(ctx context.Context, saleID string) ([]*entity.StockHistory, error) {
	return r.list(ctx, "list history by sale",
		`SELECT `+historyColumns+` FROM stock_history WHERE sale_id = $1 ORDER BY created_at, id`, saleID)
}

func (r *StockHistoryRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.StockHistory, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.StockHistory
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock history: %w", err)
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

func scanHistory(row pgx.Row) (*entity.StockHistory, error) {
	var h entity.StockHistory
	if err := row.Scan(&h.ID, &h.RadiatorID, &h.WarehouseID, &h.OldQuantity, &h.NewQuantity,
		&h.QuantityChange, &h.MovementType, &h.ChangeType, &h.SaleID, &h.UpdatedBy, &h.CreatedAt); err != nil {
		return nil, err
	}
	return &h, nil
}
