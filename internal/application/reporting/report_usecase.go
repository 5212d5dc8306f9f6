// Package reporting contiene las vistas de solo lectura sobre el libro de stock:
// stock bajo / agotado, resúmenes por bodega, dashboard y feed de movimientos.
package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/radiator-inventory/internal/application/dto"
	"github.com/jhoicas/radiator-inventory/internal/domain"
	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
	"github.com/jhoicas/radiator-inventory/internal/domain/repository"
	"github.com/jhoicas/radiator-inventory/internal/domain/stock"
)

// MovementQuery filtros del feed de movimientos tal como llegan del caller.
type MovementQuery struct {
	RadiatorID    string
	WarehouseCode string
	MovementType  string
	From, To      *time.Time
}

// ReportUseCase reportes de inventario.
//
// Fuente de datos: ReportRepository (consultas read-only).
type ReportUseCase struct {
	reportRepo    repository.ReportRepository
	warehouseRepo repository.WarehouseRepository
	sheets        StockSheetWriter
	now           func() time.Time
}

// NewReportUseCase construye el caso de uso. sheets puede ser nil si no se exporta.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	warehouseRepo repository.WarehouseRepository,
	sheets StockSheetWriter,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:    reportRepo,
		warehouseRepo: warehouseRepo,
		sheets:        sheets,
		now:           time.Now,
	}
}

// LowStock filas con 0 < cantidad ≤ LowStockThreshold.
func (uc *ReportUseCase) LowStock(ctx context.Context, warehouseCode string, limit, offset int) ([]dto.StockRowDTO, error) {
	maxQ := stock.LowStockThreshold
	return uc.listStock(ctx, warehouseCode, 1, &maxQ, limit, offset)
}

// OutOfStock filas con cantidad cero.
func (uc *ReportUseCase) OutOfStock(ctx context.Context, warehouseCode string, limit, offset int) ([]dto.StockRowDTO, error) {
	zero := 0
	return uc.listStock(ctx, warehouseCode, 0, &zero, limit, offset)
}

func (uc *ReportUseCase) listStock(ctx context.Context, warehouseCode string, minQ int, maxQ *int, limit, offset int) ([]dto.StockRowDTO, error) {
	warehouseID, err := uc.resolveWarehouse(ctx, warehouseCode)
	if err != nil {
		return nil, err
	}
	rows, err := uc.reportRepo.ListStock(ctx, repository.StockFilter{
		WarehouseID: warehouseID,
		MinQuantity: minQ,
		MaxQuantity: maxQ,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, fmt.Errorf("reporte de stock: %w", err)
	}
	return toStockRows(rows), nil
}

// WarehouseSummaries agregados por bodega.
func (uc *ReportUseCase) WarehouseSummaries(ctx context.Context) ([]dto.WarehouseSummaryDTO, error) {
	list, err := uc.reportRepo.WarehouseSummaries(ctx, stock.LowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("resumen por bodega: %w", err)
	}
	return toSummaries(list), nil
}

// Summary construye el dashboard de inventario.
//
// Cuatro llamadas en paralelo:
//  1. StockTotals              → unidades, stock bajo, agotados
//  2. WarehouseSummaries       → desglose por bodega
//  3. SalesTotals(hoy)         → ventas y facturación del día
//  4. SalesTotals(mes)         → ventas y facturación del mes
func (uc *ReportUseCase) Summary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type totalsResult struct {
		totals repository.StockTotals
		err    error
	}
	type summariesResult struct {
		list []repository.WarehouseSummary
		err  error
	}
	type salesResult struct {
		count   int
		revenue decimal.Decimal
		err     error
	}

	totalsCh := make(chan totalsResult, 1)
	summariesCh := make(chan summariesResult, 1)
	todayCh := make(chan salesResult, 1)
	monthCh := make(chan salesResult, 1)

	go func() {
		t, err := uc.reportRepo.StockTotals(ctx, stock.LowStockThreshold)
		totalsCh <- totalsResult{t, err}
	}()
	go func() {
		l, err := uc.reportRepo.WarehouseSummaries(ctx, stock.LowStockThreshold)
		summariesCh <- summariesResult{l, err}
	}()
	go func() {
		c, r, err := uc.reportRepo.SalesTotals(ctx, todayStart, todayEnd)
		todayCh <- salesResult{c, r, err}
	}()
	go func() {
		c, r, err := uc.reportRepo.SalesTotals(ctx, monthStart, todayEnd)
		monthCh <- salesResult{c, r, err}
	}()

	totals := <-totalsCh
	summaries := <-summariesCh
	today := <-todayCh
	month := <-monthCh

	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales de stock: %w", totals.err)
	}
	if summaries.err != nil {
		return nil, fmt.Errorf("dashboard: bodegas: %w", summaries.err)
	}
	if today.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", month.err)
	}

	return &dto.DashboardSummaryDTO{
		RadiatorCount:     totals.totals.RadiatorCount,
		WarehouseCount:    totals.totals.WarehouseCount,
		TotalUnits:        totals.totals.TotalUnits,
		LowStockCount:     totals.totals.LowStockCount,
		OutOfStockCount:   totals.totals.OutOfStockCount,
		TodaySalesCount:   today.count,
		TodayRevenue:      today.revenue.Round(2),
		MonthlySalesCount: month.count,
		MonthlyRevenue:    month.revenue.Round(2),
		Warehouses:        toSummaries(summaries.list),
		DateLabel:         now.Format("January 2006"),
	}, nil
}

// MovementFeed historial global, más reciente primero, con nombres resueltos.
func (uc *ReportUseCase) MovementFeed(ctx context.Context, q MovementQuery, limit, offset int) (*dto.MovementFeedResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	mt := strings.ToUpper(strings.TrimSpace(q.MovementType))
	if mt != "" && mt != entity.MovementIncoming && mt != entity.MovementOutgoing {
		return nil, domain.NewValidationError("movementType", fmt.Sprintf("tipo desconocido '%s'", q.MovementType))
	}
	if q.From != nil && q.To != nil && q.To.Before(*q.From) {
		return nil, domain.NewValidationError("to", "debe ser posterior a from")
	}
	warehouseID, err := uc.resolveWarehouse(ctx, q.WarehouseCode)
	if err != nil {
		return nil, err
	}
	rows, total, err := uc.reportRepo.MovementFeed(ctx, repository.MovementFilter{
		RadiatorID:   q.RadiatorID,
		WarehouseID:  warehouseID,
		MovementType: mt,
		From:         q.From,
		To:           q.To,
	}, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("feed de movimientos: %w", err)
	}
	items := make([]dto.MovementDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.MovementDTO{
			ID:             r.ID,
			RadiatorID:     r.RadiatorID,
			RadiatorCode:   r.RadiatorCode,
			RadiatorName:   r.RadiatorName,
			WarehouseID:    r.WarehouseID,
			WarehouseCode:  r.WarehouseCode,
			WarehouseName:  r.WarehouseName,
			OldQuantity:    r.OldQuantity,
			NewQuantity:    r.NewQuantity,
			QuantityChange: r.QuantityChange,
			MovementType:   r.MovementType,
			ChangeType:     r.ChangeType,
			SaleID:         r.SaleID,
			SaleNumber:     r.SaleNumber,
			CustomerName:   r.CustomerName,
			UpdatedByName:  r.UpdatedByName,
			CreatedAt:      r.CreatedAt,
		})
	}
	return &dto.MovementFeedResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// ExportStock planilla con todo el stock (opcionalmente de una bodega). Devuelve (bytes, filename).
func (uc *ReportUseCase) ExportStock(ctx context.Context, warehouseCode string) ([]byte, string, error) {
	if uc.sheets == nil {
		return nil, "", fmt.Errorf("exportación de stock no configurada")
	}
	rows, err := uc.listStock(ctx, warehouseCode, 0, nil, 0, 0)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.sheets.WriteStock(rows)
	if err != nil {
		return nil, "", fmt.Errorf("exportar stock: %w", err)
	}
	name := "stock"
	if warehouseCode != "" {
		name += "_" + warehouseCode
	}
	return data, fmt.Sprintf("%s_%s.xlsx", name, uc.now().Format("20060102")), nil
}

func (uc *ReportUseCase) resolveWarehouse(ctx context.Context, code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", nil
	}
	wh, err := uc.warehouseRepo.GetByCode(ctx, code)
	if err != nil {
		return "", fmt.Errorf("get warehouse: %w", err)
	}
	if wh == nil {
		return "", domain.NewNotFoundError("warehouse", code)
	}
	return wh.ID, nil
}

func toStockRows(rows []repository.StockRow) []dto.StockRowDTO {
	out := make([]dto.StockRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockRowDTO{
			RadiatorID:    r.RadiatorID,
			RadiatorCode:  r.RadiatorCode,
			RadiatorBrand: r.RadiatorBrand,
			RadiatorName:  r.RadiatorName,
			WarehouseID:   r.WarehouseID,
			WarehouseCode: r.WarehouseCode,
			WarehouseName: r.WarehouseName,
			Quantity:      r.Quantity,
			Status:        stock.Status(r.Quantity),
			UpdatedAt:     r.UpdatedAt,
		})
	}
	return out
}

func toSummaries(list []repository.WarehouseSummary) []dto.WarehouseSummaryDTO {
	out := make([]dto.WarehouseSummaryDTO, 0, len(list))
	for _, s := range list {
		out = append(out, dto.WarehouseSummaryDTO(s))
	}
	return out
}
