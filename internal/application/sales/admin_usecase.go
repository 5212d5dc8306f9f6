package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/radiator-inventory/internal/application/dto"
	"github.com/jhoicas/radiator-inventory/internal/domain"
	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
	"github.com/jhoicas/radiator-inventory/internal/domain/repository"
	"github.com/jhoicas/radiator-inventory/internal/domain/sale"
	"github.com/jhoicas/radiator-inventory/pkg/logger"
)

// SaleAdminUseCase consultas y cambios de estado de ventas ya registradas.
type SaleAdminUseCase struct {
	txRunner      SalesTxRunner
	ledger        StockLedger
	saleRepo      repository.SaleRepository
	customerRepo  repository.CustomerRepository
	radiatorRepo  repository.RadiatorRepository
	warehouseRepo repository.WarehouseRepository
	metrics       Metrics
	log           *logger.Logger
	now           func() time.Time
}

// NewSaleAdminUseCase construye el caso de uso.
func NewSaleAdminUseCase(
	txRunner SalesTxRunner,
	ledger StockLedger,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	radiatorRepo repository.RadiatorRepository,
	warehouseRepo repository.WarehouseRepository,
	metrics Metrics,
	log *logger.Logger,
) *SaleAdminUseCase {
	if metrics == nil {
		metrics = NopMetrics
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SaleAdminUseCase{
		txRunner:      txRunner,
		ledger:        ledger,
		saleRepo:      saleRepo,
		customerRepo:  customerRepo,
		radiatorRepo:  radiatorRepo,
		warehouseRepo: warehouseRepo,
		metrics:       metrics,
		log:           log.Component("sales"),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// UpdateSaleStatus aplica una transición de estado. Con restock=true (solo hacia Cancelled o
// Refunded) cada línea vuelve al stock en la misma transacción; sin él no se toca el stock.
func (uc *SaleAdminUseCase) UpdateSaleStatus(ctx context.Context, saleID, userID string, in dto.UpdateSaleStatusRequest) (*dto.SaleResponse, error) {
	var changeType string
	switch in.Status {
	case entity.SaleStatusCancelled:
		changeType = entity.ChangeTypeSaleCancelled
	case entity.SaleStatusRefunded:
		changeType = entity.ChangeTypeSaleRefunded
	case entity.SaleStatusCompleted, entity.SaleStatusPending:
		if in.Restock {
			return nil, domain.NewValidationError("restock", "solo aplica al cancelar o reembolsar")
		}
	default:
		return nil, domain.NewValidationError("status", fmt.Sprintf("estado desconocido '%s'", in.Status))
	}

	now := uc.now()
	var updated *entity.Sale
	err := uc.txRunner.RunSale(ctx, func(
		stockRepo repository.StockLevelRepository,
		historyRepo repository.StockHistoryRepository,
		saleRepo repository.SaleRepository,
	) error {
		s, err := saleRepo.GetForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.NewNotFoundError("sale", saleID)
		}
		if !sale.CanTransition(s.Status, in.Status) {
			return domain.NewValidationError("status", fmt.Sprintf("transición no permitida %s → %s", s.Status, in.Status))
		}
		if err := saleRepo.UpdateStatus(ctx, s.ID, in.Status, now); err != nil {
			return err
		}
		if in.Restock {
			for _, it := range s.Items {
				if _, err := uc.ledger.RestockForSale(ctx, stockRepo, historyRepo,
					it.RadiatorID, it.WarehouseID, it.Quantity, s.ID, userID, changeType, now); err != nil {
					return err
				}
			}
		}
		s.Status = in.Status
		s.UpdatedAt = now
		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated.Status != entity.SaleStatusCompleted {
		uc.metrics.ObserveSale(updated.Status, updated.TotalAmount)
	}
	uc.log.Info().
		Str("sale_id", updated.ID).
		Str("status", updated.Status).
		Bool("restock", in.Restock).
		Msg("estado de venta actualizado")
	return uc.decorate(ctx, updated), nil
}

// DeleteSale elimina la venta y sus líneas; el historial de stock se conserva sin referencia.
func (uc *SaleAdminUseCase) DeleteSale(ctx context.Context, saleID string) error {
	s, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return fmt.Errorf("get sale: %w", err)
	}
	if s == nil {
		return domain.NewNotFoundError("sale", saleID)
	}
	if err := uc.saleRepo.Delete(ctx, saleID); err != nil {
		return err
	}
	uc.log.Info().Str("sale_id", saleID).Str("sale_number", s.SaleNumber).Msg("venta eliminada")
	return nil
}

// GetSale venta con líneas y nombres resueltos.
func (uc *SaleAdminUseCase) GetSale(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	s, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if s == nil {
		return nil, domain.NewNotFoundError("sale", saleID)
	}
	return uc.decorate(ctx, s), nil
}

// ListSales lista paginada, más reciente primero. status vacío = todos.
func (uc *SaleAdminUseCase) ListSales(ctx context.Context, status string, limit, offset int) (*dto.SaleListResponse, error) {
	if status != "" && status != entity.SaleStatusPending && status != entity.SaleStatusCompleted &&
		status != entity.SaleStatusCancelled && status != entity.SaleStatusRefunded {
		return nil, domain.NewValidationError("status", fmt.Sprintf("estado desconocido '%s'", status))
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	list, total, err := uc.saleRepo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	customers := make(map[string]*entity.Customer)
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		c, ok := customers[s.CustomerID]
		if !ok {
			c, _ = uc.customerRepo.GetByID(ctx, s.CustomerID)
			customers[s.CustomerID] = c
		}
		items = append(items, *ToSaleResponse(s, c, nil, nil))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// decorate resuelve cliente, radiadores y bodegas; las referencias faltantes quedan sin nombre.
func (uc *SaleAdminUseCase) decorate(ctx context.Context, s *entity.Sale) *dto.SaleResponse {
	customer, _ := uc.customerRepo.GetByID(ctx, s.CustomerID)
	radiators := make(map[string]*entity.Radiator)
	warehouses := make(map[string]*entity.Warehouse)
	for _, it := range s.Items {
		if _, ok := radiators[it.RadiatorID]; !ok {
			if r, err := uc.radiatorRepo.GetByID(ctx, it.RadiatorID); err == nil && r != nil {
				radiators[it.RadiatorID] = r
			}
		}
		if _, ok := warehouses[it.WarehouseID]; !ok {
			if w, err := uc.warehouseRepo.GetByID(ctx, it.WarehouseID); err == nil && w != nil {
				warehouses[it.WarehouseID] = w
			}
		}
	}
	return ToSaleResponse(s, customer, radiators, warehouses)
}
