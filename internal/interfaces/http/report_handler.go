package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/radiator-inventory/internal/application/dto"
	"github.com/jhoicas/radiator-inventory/internal/application/reporting"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler reportes de inventario y tablero.
type ReportHandler struct {
	uc *reporting.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reporting.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// LowStock godoc
// @Summary      Stock bajo (1 a 5 unidades)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        warehouse_code  query  string  false  "Filtrar por bodega"
// @Param        limit           query  int     false  "Límite"  default(20)
// @Param        offset          query  int     false  "Offset"  default(0)
// @Success      200             {array}   dto.StockRowDTO
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.LowStock(c.UserContext(), c.Query("warehouse_code"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// OutOfStock godoc
// @Summary      Sin stock
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        warehouse_code  query  string  false  "Filtrar por bodega"
// @Param        limit           query  int     false  "Límite"  default(20)
// @Param        offset          query  int     false  "Offset"  default(0)
// @Success      200             {array}   dto.StockRowDTO
// @Router       /api/reports/out-of-stock [get]
func (h *ReportHandler) OutOfStock(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.OutOfStock(c.UserContext(), c.Query("warehouse_code"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Warehouses godoc
// @Summary      Resumen por bodega
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WarehouseSummaryDTO
// @Router       /api/reports/warehouses [get]
func (h *ReportHandler) Warehouses(c *fiber.Ctx) error {
	out, err := h.uc.WarehouseSummaries(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Tablero: stock y ventas del día y del mes
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Movimientos de stock con venta, cliente y usuario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        radiator_id     query  string  false  "Radiador"
// @Param        warehouse_code  query  string  false  "Bodega"
// @Param        movement_type   query  string  false  "incoming, outgoing, adjustment"
// @Param        from            query  string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        to              query  string  false  "Hasta (YYYY-MM-DD o RFC3339)"
// @Param        limit           query  int     false  "Límite"  default(20)
// @Param        offset          query  int     false  "Offset"  default(0)
// @Success      200             {object}  dto.MovementFeedResponse
// @Failure      400             {object}  dto.ErrorResponse
// @Router       /api/reports/movements [get]
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	q := reporting.MovementQuery{
		RadiatorID:    c.Query("radiator_id"),
		WarehouseCode: c.Query("warehouse_code"),
		MovementType:  c.Query("movement_type"),
	}
	var err error
	if q.From, err = parseDateQuery(c.Query("from"), false); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from: " + err.Error()})
	}
	if q.To, err = parseDateQuery(c.Query("to"), true); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to: " + err.Error()})
	}
	limit, offset := pageParams(c)
	out, err := h.uc.MovementFeed(c.UserContext(), q, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportStock godoc
// @Summary      Exportar stock a xlsx
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        warehouse_code  query  string  false  "Filtrar por bodega"
// @Success      200             {file}  binary
// @Router       /api/reports/stock/export [get]
func (h *ReportHandler) ExportStock(c *fiber.Ctx) error {
	data, filename, err := h.uc.ExportStock(c.UserContext(), c.Query("warehouse_code"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

// parseDateQuery acepta YYYY-MM-DD o RFC3339. Una fecha sin hora usada como
// límite superior cubre el día completo.
func parseDateQuery(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida '%s'", raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
