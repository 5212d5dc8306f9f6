package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/radiator-inventory/internal/application/dto"
	"github.com/jhoicas/radiator-inventory/internal/domain"
	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
	"github.com/jhoicas/radiator-inventory/internal/domain/repository"
	"github.com/jhoicas/radiator-inventory/internal/domain/stock"
	"github.com/jhoicas/radiator-inventory/pkg/logger"
)

// AdjustInput entrada de un ajuste absoluto de stock.
type AdjustInput struct {
	RadiatorID    string
	WarehouseCode string
	Quantity      int
	ChangeType    string // vacío = "Manual Update"
	UpdatedBy     string // vacío = sin usuario (CLI, importaciones)
}

// LedgerUseCase libro de stock: cantidades por radiador+bodega y su historial append-only.
// Cada cambio de cantidad y su registro de historial se escriben en la misma transacción,
// con la fila de StockLevel bloqueada (SELECT FOR UPDATE).
type LedgerUseCase struct {
	txRunner      TxRunner
	radiatorRepo  repository.RadiatorRepository
	warehouseRepo repository.WarehouseRepository
	stockRepo     repository.StockLevelRepository
	historyRepo   repository.StockHistoryRepository
	metrics       Metrics
	log           *logger.Logger
	now           func() time.Time
}

// NewLedgerUseCase construye el caso de uso. metrics y log pueden ser nil.
func NewLedgerUseCase(
	txRunner TxRunner,
	radiatorRepo repository.RadiatorRepository,
	warehouseRepo repository.WarehouseRepository,
	stockRepo repository.StockLevelRepository,
	historyRepo repository.StockHistoryRepository,
	metrics Metrics,
	log *logger.Logger,
) *LedgerUseCase {
	if metrics == nil {
		metrics = NopMetrics
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{
		txRunner:      txRunner,
		radiatorRepo:  radiatorRepo,
		warehouseRepo: warehouseRepo,
		stockRepo:     stockRepo,
		historyRepo:   historyRepo,
		metrics:       metrics,
		log:           log.Component("ledger"),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// AdjustStock fija la cantidad absoluta de un radiador en una bodega y registra el historial.
// Cantidades negativas y códigos de bodega mal formados se rechazan antes de escribir.
func (uc *LedgerUseCase) AdjustStock(ctx context.Context, in AdjustInput) (*entity.StockHistory, error) {
	h, err := uc.adjust(ctx, in)
	if err != nil {
		uc.metrics.ObserveRejection("adjust", Reason(err))
		return nil, err
	}
	return h, nil
}

func (uc *LedgerUseCase) adjust(ctx context.Context, in AdjustInput) (*entity.StockHistory, error) {
	in.RadiatorID = strings.TrimSpace(in.RadiatorID)
	in.WarehouseCode = strings.TrimSpace(in.WarehouseCode)
	if in.RadiatorID == "" {
		return nil, domain.NewValidationError("radiatorId", "es obligatorio")
	}
	if in.Quantity < 0 {
		return nil, domain.NewValidationError("quantity", "no puede ser negativa")
	}
	if !stock.ValidWarehouseCode(in.WarehouseCode) {
		return nil, domain.NewValidationError("warehouseCode", fmt.Sprintf("formato inválido '%s'", in.WarehouseCode))
	}
	changeType := strings.TrimSpace(in.ChangeType)
	if changeType == "" {
		changeType = entity.ChangeTypeManualUpdate
	}

	radiator, err := uc.radiatorRepo.GetByID(ctx, in.RadiatorID)
	if err != nil {
		return nil, fmt.Errorf("get radiator: %w", err)
	}
	if radiator == nil {
		return nil, domain.NewNotFoundError("radiator", in.RadiatorID)
	}
	wh, err := uc.warehouseRepo.GetByCode(ctx, in.WarehouseCode)
	if err != nil {
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	if wh == nil {
		return nil, domain.NewNotFoundError("warehouse", in.WarehouseCode)
	}

	now := uc.now()
	var history *entity.StockHistory
	err = uc.txRunner.Run(ctx, func(stockRepo repository.StockLevelRepository, historyRepo repository.StockHistoryRepository) error {
		level, err := stockRepo.GetForUpdate(ctx, radiator.ID, wh.ID)
		if err != nil {
			return err
		}
		h, err := uc.apply(ctx, stockRepo, historyRepo, level, in.Quantity, changeType, nil, in.UpdatedBy, now)
		if err != nil {
			return err
		}
		history = h
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.ObserveMovement(history.MovementType, history.ChangeType, history.QuantityChange)
	uc.log.Info().
		Str("radiator_id", radiator.ID).
		Str("warehouse", wh.Code).
		Int("old", history.OldQuantity).
		Int("new", history.NewQuantity).
		Str("change_type", changeType).
		Msg("stock ajustado")
	return history, nil
}

// BulkAdjustStock aplica cada entrada de forma independiente (una transacción por entrada).
// Los errores se reportan por ítem; el lote nunca se aborta completo.
func (uc *LedgerUseCase) BulkAdjustStock(ctx context.Context, items []dto.BulkStockItem, updatedBy string) dto.BulkAdjustStockResponse {
	out := dto.BulkAdjustStockResponse{Errors: []dto.BulkItemError{}}
	for i, item := range items {
		_, err := uc.AdjustStock(ctx, AdjustInput{
			RadiatorID:    item.RadiatorID,
			WarehouseCode: item.WarehouseCode,
			Quantity:      item.Quantity,
			ChangeType:    entity.ChangeTypeBulkUpdate,
			UpdatedBy:     updatedBy,
		})
		if err != nil {
			out.ErrorCount++
			out.Errors = append(out.Errors, dto.BulkItemError{
				Index:         i,
				RadiatorID:    item.RadiatorID,
				WarehouseCode: item.WarehouseCode,
				Message:       err.Error(),
			})
			continue
		}
		out.SuccessCount++
	}
	uc.log.Info().Int("success", out.SuccessCount).Int("errors", out.ErrorCount).Msg("ajuste masivo aplicado")
	return out
}

// DecrementForSale descuenta stock para una línea de venta usando los repositorios de la
// transacción del caller. Si retorna error el caller debe hacer rollback de toda la venta.
func (uc *LedgerUseCase) DecrementForSale(
	ctx context.Context,
	stockRepo repository.StockLevelRepository,
	historyRepo repository.StockHistoryRepository,
	radiatorID, warehouseID string,
	quantity int,
	saleID, userID string,
	now time.Time,
) (*entity.StockHistory, error) {
	if quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "debe ser mayor que cero")
	}
	level, err := stockRepo.GetForUpdate(ctx, radiatorID, warehouseID)
	if err != nil {
		return nil, err
	}
	if level.Quantity < quantity {
		return nil, &domain.InsufficientStockError{
			RadiatorID:  radiatorID,
			WarehouseID: warehouseID,
			Requested:   quantity,
			Available:   level.Quantity,
		}
	}
	return uc.apply(ctx, stockRepo, historyRepo, level, level.Quantity-quantity, entity.ChangeTypeSale, &saleID, userID, now)
}

// RestockForSale devuelve al stock las unidades de una línea de venta cancelada o reembolsada,
// dentro de la transacción del caller. changeType identifica el motivo.
func (uc *LedgerUseCase) RestockForSale(
	ctx context.Context,
	stockRepo repository.StockLevelRepository,
	historyRepo repository.StockHistoryRepository,
	radiatorID, warehouseID string,
	quantity int,
	saleID, userID, changeType string,
	now time.Time,
) (*entity.StockHistory, error) {
	if quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "debe ser mayor que cero")
	}
	level, err := stockRepo.GetForUpdate(ctx, radiatorID, warehouseID)
	if err != nil {
		return nil, err
	}
	return uc.apply(ctx, stockRepo, historyRepo, level, level.Quantity+quantity, changeType, &saleID, userID, now)
}

// apply escribe la nueva cantidad sobre una fila ya bloqueada y agrega el historial.
func (uc *LedgerUseCase) apply(
	ctx context.Context,
	stockRepo repository.StockLevelRepository,
	historyRepo repository.StockHistoryRepository,
	level *entity.StockLevel,
	newQty int,
	changeType string,
	saleID *string,
	userID string,
	now time.Time,
) (*entity.StockHistory, error) {
	if newQty < 0 {
		return nil, domain.NewValidationError("quantity", "no puede ser negativa")
	}
	h := stock.NewHistory(level.RadiatorID, level.WarehouseID, level.Quantity, newQty, changeType)
	h.ID = uuid.New().String()
	h.SaleID = saleID
	if userID != "" {
		u := userID
		h.UpdatedBy = &u
	}
	h.CreatedAt = now

	level.Quantity = newQty
	level.UpdatedAt = now
	if err := stockRepo.Update(ctx, level); err != nil {
		return nil, err
	}
	if err := historyRepo.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// GetTotalStock suma la cantidad de un radiador en todas las bodegas.
func (uc *LedgerUseCase) GetTotalStock(ctx context.Context, radiatorID string) (int, error) {
	total, err := uc.stockRepo.SumByRadiator(ctx, radiatorID)
	if err != nil {
		return 0, fmt.Errorf("sum stock: %w", err)
	}
	return total, nil
}

// GetStockStatus clasifica una cantidad con el umbral fijo de stock bajo.
func (uc *LedgerUseCase) GetStockStatus(quantity int) string {
	return stock.Status(quantity)
}

// GetRadiatorStock desglose por bodega con total y estado.
func (uc *LedgerUseCase) GetRadiatorStock(ctx context.Context, radiatorID string) (*dto.RadiatorStockResponse, error) {
	radiator, err := uc.radiatorRepo.GetByID(ctx, radiatorID)
	if err != nil {
		return nil, fmt.Errorf("get radiator: %w", err)
	}
	if radiator == nil {
		return nil, domain.NewNotFoundError("radiator", radiatorID)
	}
	levels, err := uc.stockRepo.ListByRadiator(ctx, radiatorID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	out := &dto.RadiatorStockResponse{
		RadiatorID: radiator.ID,
		Warehouses: make([]dto.WarehouseStockDTO, 0, len(levels)),
	}
	for _, l := range levels {
		row := dto.WarehouseStockDTO{
			WarehouseID: l.WarehouseID,
			Quantity:    l.Quantity,
			Status:      stock.Status(l.Quantity),
			UpdatedAt:   l.UpdatedAt,
		}
		if wh, err := uc.warehouseRepo.GetByID(ctx, l.WarehouseID); err == nil && wh != nil {
			row.WarehouseCode = wh.Code
			row.WarehouseName = wh.Name
		}
		out.TotalStock += l.Quantity
		out.Warehouses = append(out.Warehouses, row)
	}
	out.Status = stock.Status(out.TotalStock)
	return out, nil
}

// ListHistory historial de un radiador, más reciente primero. warehouseCode vacío = todas.
func (uc *LedgerUseCase) ListHistory(ctx context.Context, radiatorID, warehouseCode string, limit, offset int) (*dto.StockHistoryListResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	warehouseID := ""
	if warehouseCode != "" {
		wh, err := uc.warehouseRepo.GetByCode(ctx, warehouseCode)
		if err != nil {
			return nil, fmt.Errorf("get warehouse: %w", err)
		}
		if wh == nil {
			return nil, domain.NewNotFoundError("warehouse", warehouseCode)
		}
		warehouseID = wh.ID
	}
	list, err := uc.historyRepo.ListByRadiator(ctx, radiatorID, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	items := make([]dto.StockHistoryResponse, 0, len(list))
	for _, h := range list {
		items = append(items, HistoryToResponse(h))
	}
	return &dto.StockHistoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// HistoryToResponse mapea un registro de historial al DTO de salida.
func HistoryToResponse(h *entity.StockHistory) dto.StockHistoryResponse {
	return dto.StockHistoryResponse{
		ID:             h.ID,
		RadiatorID:     h.RadiatorID,
		WarehouseID:    h.WarehouseID,
		OldQuantity:    h.OldQuantity,
		NewQuantity:    h.NewQuantity,
		QuantityChange: h.QuantityChange,
		MovementType:   h.MovementType,
		ChangeType:     h.ChangeType,
		SaleID:         h.SaleID,
		UpdatedBy:      h.UpdatedBy,
		CreatedAt:      h.CreatedAt,
	}
}

// Reason etiqueta corta de un error de dominio (para métricas y logs).
func Reason(err error) string {
	var (
		verr *domain.ValidationError
		serr *domain.InsufficientStockError
	)
	switch {
	case errors.As(err, &verr), errors.Is(err, domain.ErrInvalidInput):
		return "validation"
	case errors.As(err, &serr), errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}
