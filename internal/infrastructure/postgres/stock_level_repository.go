package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/radiator-inventory/internal/domain"
	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
	"github.com/jhoicas/radiator-inventory/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

const stockLevelColumns = `id, radiator_id, warehouse_id, quantity, created_at, updated_at`

// StockLevelRepo cantidades por radiador+bodega sobre PostgreSQL (usable con pool o tx).
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// GetForUpdate asegura que la fila exista (INSERT ... ON CONFLICT DO NOTHING) y la bloquea
// con SELECT FOR UPDATE. Dos transacciones sobre el mismo par se serializan aquí, incluso
// cuando ninguna de las dos encontró la fila al empezar.
func (r *StockLevelRepo) GetForUpdate(ctx context.Context, radiatorID, warehouseID string) (*entity.StockLevel, error) {
	now := time.Now().UTC()
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_levels (`+stockLevelColumns+`)
		VALUES ($1, $2, $3, 0, $4, $4)
		ON CONFLICT (radiator_id, warehouse_id) DO NOTHING`,
		uuid.New().String(), radiatorID, warehouseID, now,
	)
	if err != nil {
		return nil, mapWriteError("stock_level", "ensure stock level", err)
	}
	level, err := scanStockLevel(r.q.QueryRow(ctx, `
		SELECT `+stockLevelColumns+` FROM stock_levels
		WHERE radiator_id = $1 AND warehouse_id = $2
		FOR UPDATE`, radiatorID, warehouseID))
	if err != nil {
		return nil, fmt.Errorf("get stock level for update: %w", err)
	}
	return level, nil
}

// Get devuelve nil si el par aún no tiene fila.
func (r *StockLevelRepo) Get(ctx context.Context, radiatorID, warehouseID string) (*entity.StockLevel, error) {
	level, err := scanStockLevel(r.q.QueryRow(ctx, `
		SELECT `+stockLevelColumns+` FROM stock_levels
		WHERE radiator_id = $1 AND warehouse_id = $2`, radiatorID, warehouseID))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return level, nil
}

// Update guarda la nueva cantidad. Cantidad negativa viola el CHECK -> ConflictError.
func (r *StockLevelRepo) Update(ctx context.Context, level *entity.StockLevel) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE stock_levels SET quantity = $3, updated_at = $4
		WHERE radiator_id = $1 AND warehouse_id = $2`,
		level.RadiatorID, level.WarehouseID, level.Quantity, level.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("stock_level", "update stock level", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFoundError("stock_level", level.RadiatorID+"/"+level.WarehouseID)
	}
	return nil
}

// ListByRadiator niveles del radiador en todas las bodegas.
func (r *StockLevelRepo) ListByRadiator(ctx context.Context, radiatorID string) ([]*entity.StockLevel, error) {
	rows, err := r.q.Query(ctx, `
		SELECT s.id, s.radiator_id, s.warehouse_id, s.quantity, s.created_at, s.updated_at
		FROM stock_levels s
		JOIN warehouses w ON w.id = s.warehouse_id
		WHERE s.radiator_id = $1
		ORDER BY w.code`, radiatorID)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLevel
	for rows.Next() {
		level, err := scanStockLevel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, level)
	}
	return list, rows.Err()
}

// SumByRadiator stock total del radiador (0 si no tiene filas).
func (r *StockLevelRepo) SumByRadiator(ctx context.Context, radiatorID string) (int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM stock_levels WHERE radiator_id = $1`, radiatorID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum stock: %w", err)
	}
	return total, nil
}

func scanStockLevel(row pgx.Row) (*entity.StockLevel, error) {
	var l entity.StockLevel
	if err := row.Scan(&l.ID, &l.RadiatorID, &l.WarehouseID, &l.Quantity, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}
