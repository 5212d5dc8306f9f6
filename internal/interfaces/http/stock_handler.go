package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/radiator-inventory/internal/application/dto"
	"github.com/jhoicas/radiator-inventory/internal/application/inventory"
	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
)

// BulkSheetParser lee un ajuste masivo desde una planilla subida.
type BulkSheetParser interface {
	ParseBulkItems(r io.Reader) ([]dto.BulkStockItem, error)
}

// StockHandler ajustes de stock e historial por radiador.
type StockHandler struct {
	ledger *inventory.LedgerUseCase
	sheets BulkSheetParser
}

// NewStockHandler construye el handler. sheets puede ser nil (sin importación xlsx).
func NewStockHandler(ledger *inventory.LedgerUseCase, sheets BulkSheetParser) *StockHandler {
	return &StockHandler{ledger: ledger, sheets: sheets}
}

// Adjust godoc
// @Summary      Fijar cantidad absoluta de stock en una bodega
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        radiator_id  path  string                  true  "ID del radiador"
// @Param        body         body  dto.AdjustStockRequest  true  "warehouse_code y quantity"
// @Success      200          {object}  dto.StockHistoryResponse
// @Failure      400          {object}  dto.ErrorResponse
// @Failure      404          {object}  dto.ErrorResponse
// @Router       /api/stock/{radiator_id} [put]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	changeType := entity.ChangeTypeManualUpdate
	if in.Reason != "" {
		changeType = in.Reason
	}
	hist, err := h.ledger.AdjustStock(c.UserContext(), inventory.AdjustInput{
		RadiatorID:    c.Params("radiator_id"),
		WarehouseCode: in.WarehouseCode,
		Quantity:      in.Quantity,
		ChangeType:    changeType,
		UpdatedBy:     GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inventory.HistoryToResponse(hist))
}

// Bulk godoc
// @Summary      Ajuste masivo de stock (errores por entrada, sin abortar el lote)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkAdjustStockRequest  true  "Entradas"
// @Success      200   {object}  dto.BulkAdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/bulk [post]
func (h *StockHandler) Bulk(c *fiber.Ctx) error {
	var in dto.BulkAdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "items es requerido"})
	}
	return c.JSON(h.ledger.BulkAdjustStock(c.UserContext(), in.Items, GetUserID(c)))
}

// Import godoc
// @Summary      Ajuste masivo desde planilla xlsx
// @Tags         stock
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Planilla con columnas radiator_id, warehouse_code, quantity"
// @Success      200   {object}  dto.BulkAdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/import [post]
func (h *StockHandler) Import(c *fiber.Ctx) error {
	if h.sheets == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "importación no disponible"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "file es requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()

	items, err := h.sheets.ParseBulkItems(f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.ledger.BulkAdjustStock(c.UserContext(), items, GetUserID(c)))
}

// Get godoc
// @Summary      Stock de un radiador por bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        radiator_id  path  string  true  "ID del radiador"
// @Success      200          {object}  dto.RadiatorStockResponse
// @Failure      404          {object}  dto.ErrorResponse
// @Router       /api/stock/{radiator_id} [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	out, err := h.ledger.GetRadiatorStock(c.UserContext(), c.Params("radiator_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Total godoc
// @Summary      Stock total de un radiador y su estado
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        radiator_id  path  string  true  "ID del radiador"
// @Success      200          {object}  map[string]interface{}
// @Router       /api/stock/{radiator_id}/total [get]
func (h *StockHandler) Total(c *fiber.Ctx) error {
	total, err := h.ledger.GetTotalStock(c.UserContext(), c.Params("radiator_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"radiator_id": c.Params("radiator_id"),
		"total_stock": total,
		"status":      h.ledger.GetStockStatus(total),
	})
}

// History godoc
// @Summary      Historial de movimientos de un radiador
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        radiator_id     path   string  true   "ID del radiador"
// @Param        warehouse_code  query  string  false  "Filtrar por bodega"
// @Param        limit           query  int     false  "Límite"  default(20)
// @Param        offset          query  int     false  "Offset"  default(0)
// @Success      200             {object}  dto.StockHistoryListResponse
// @Router       /api/stock/{radiator_id}/history [get]
func (h *StockHandler) History(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.ledger.ListHistory(c.UserContext(), c.Params("radiator_id"), c.Query("warehouse_code"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
