package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
	"github.com/jhoicas/radiator-inventory/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes y dashboard (joins sobre el libro de stock).
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// ListStock niveles de stock con nombres, de menor a mayor cantidad.
func (r *ReportRepo) ListStock(ctx context.Context, f repository.StockFilter) ([]repository.StockRow, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	conds = append(conds, "s.quantity >= "+arg(f.MinQuantity))
	if f.MaxQuantity != nil {
		conds = append(conds, "s.quantity <= "+arg(*f.MaxQuantity))
	}
	if f.WarehouseID != "" {
		conds = append(conds, "s.warehouse_id = "+arg(f.WarehouseID))
	}
	query := `
		SELECT s.radiator_id, r.code, r.brand, r.name, s.warehouse_id, w.code, w.name, s.quantity, s.updated_at
		FROM stock_levels s
		JOIN radiators r ON r.id = s.radiator_id
		JOIN warehouses w ON w.id = s.warehouse_id
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY s.quantity, r.code, w.code`
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit) + " OFFSET " + arg(f.Offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []repository.StockRow
	for rows.Next() {
		var s repository.StockRow
		if err := rows.Scan(&s.RadiatorID, &s.RadiatorCode, &s.RadiatorBrand, &s.RadiatorName,
			&s.WarehouseID, &s.WarehouseCode, &s.WarehouseName, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// WarehouseSummaries agregados por bodega; las bodegas sin stock aparecen en cero.
func (r *ReportRepo) WarehouseSummaries(ctx context.Context, lowThreshold int) ([]repository.WarehouseSummary, error) {
	query := `
		SELECT w.id, w.code, w.name,
			COUNT(s.id),
			COALESCE(SUM(s.quantity), 0),
			COUNT(*) FILTER (WHERE s.quantity > 0 AND s.quantity <= $1),
			COUNT(*) FILTER (WHERE s.quantity = 0)
		FROM warehouses w
		LEFT JOIN stock_levels s ON s.warehouse_id = w.id
		GROUP BY w.id, w.code, w.name
		ORDER BY w.code`
	rows, err := r.q.Query(ctx, query, lowThreshold)
	if err != nil {
		return nil, fmt.Errorf("warehouse summaries: %w", err)
	}
	defer rows.Close()
	var list []repository.WarehouseSummary
	for rows.Next() {
		var s repository.WarehouseSummary
		if err := rows.Scan(&s.WarehouseID, &s.WarehouseCode, &s.WarehouseName, &s.RadiatorCount,
			&s.TotalUnits, &s.LowStockCount, &s.OutOfStockCount); err != nil {
			return nil, fmt.Errorf("scan warehouse summary: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// StockTotals agregados globales del inventario.
func (r *ReportRepo) StockTotals(ctx context.Context, lowThreshold int) (repository.StockTotals, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM radiators),
			(SELECT COUNT(*) FROM warehouses),
			COALESCE(SUM(quantity), 0),
			COUNT(*) FILTER (WHERE quantity > 0 AND quantity <= $1),
			COUNT(*) FILTER (WHERE quantity = 0)
		FROM stock_levels`
	var t repository.StockTotals
	if err := r.q.QueryRow(ctx, query, lowThreshold).Scan(
		&t.RadiatorCount, &t.WarehouseCount, &t.TotalUnits, &t.LowStockCount, &t.OutOfStockCount,
	); err != nil {
		return t, fmt.Errorf("stock totals: %w", err)
	}
	return t, nil
}

// SalesTotals cantidad e ingresos de ventas en [from, to], sin canceladas ni reembolsadas.
func (r *ReportRepo) SalesTotals(ctx context.Context, from, to time.Time) (int, decimal.Decimal, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM sales
		WHERE sale_date BETWEEN $1 AND $2 AND status NOT IN ($3, $4)`
	var (
		count   int
		revenue decimal.Decimal
	)
	if err := r.q.QueryRow(ctx, query, from, to,
		entity.SaleStatusCancelled, entity.SaleStatusRefunded).Scan(&count, &revenue); err != nil {
		return 0, decimal.Zero, fmt.Errorf("sales totals: %w", err)
	}
	return count, revenue, nil
}

// MovementFeed historial más reciente primero, con nombres de radiador, bodega, venta,
// cliente y usuario. Devuelve también el total filtrado.
func (r *ReportRepo) MovementFeed(ctx context.Context, f repository.MovementFilter, limit, offset int) ([]repository.MovementRow, int, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.RadiatorID != "" {
		conds = append(conds, "h.radiator_id = "+arg(f.RadiatorID))
	}
	if f.WarehouseID != "" {
		conds = append(conds, "h.warehouse_id = "+arg(f.WarehouseID))
	}
	if f.MovementType != "" {
		conds = append(conds, "h.movement_type = "+arg(f.MovementType))
	}
	if f.From != nil {
		conds = append(conds, "h.created_at >= "+arg(*f.From))
	}
	if f.To != nil {
		conds = append(conds, "h.created_at <= "+arg(*f.To))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_history h`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := `
		SELECT h.id, h.radiator_id, r.code, r.name, h.warehouse_id, w.code, w.name,
			h.old_quantity, h.new_quantity, h.quantity_change, h.movement_type, h.change_type,
			h.sale_id, s.sale_number,
			NULLIF(TRIM(c.first_name || ' ' || c.last_name), ''),
			COALESCE(NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''), u.email),
			h.created_at
		FROM stock_history h
		JOIN radiators r ON r.id = h.radiator_id
		JOIN warehouses w ON w.id = h.warehouse_id
		LEFT JOIN sales s ON s.id = h.sale_id
		LEFT JOIN customers c ON c.id = s.customer_id
		LEFT JOIN users u ON u.id = h.updated_by` + where + `
		ORDER BY h.created_at DESC, h.id`
	if limit > 0 {
		query += " LIMIT " + arg(limit) + " OFFSET " + arg(offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("movement feed: %w", err)
	}
	defer rows.Close()
	var list []repository.MovementRow
	for rows.Next() {
		var (
			m                                     repository.MovementRow
			saleID, saleNumber, customer, updater *string
		)
		if err := rows.Scan(&m.ID, &m.RadiatorID, &m.RadiatorCode, &m.RadiatorName,
			&m.WarehouseID, &m.WarehouseCode, &m.WarehouseName,
			&m.OldQuantity, &m.NewQuantity, &m.QuantityChange, &m.MovementType, &m.ChangeType,
			&saleID, &saleNumber, &customer, &updater, &m.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		m.SaleID, m.SaleNumber = deref(saleID), deref(saleNumber)
		m.CustomerName, m.UpdatedByName = deref(customer), deref(updater)
		list = append(list, m)
	}
	return list, total, rows.Err()
}
