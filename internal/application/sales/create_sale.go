package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/radiator-inventory/internal/application/dto"
	"github.com/jhoicas/radiator-inventory/internal/application/inventory"
	"github.com/jhoicas/radiator-inventory/internal/domain"
	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
	"github.com/jhoicas/radiator-inventory/internal/domain/repository"
	"github.com/jhoicas/radiator-inventory/internal/domain/sale"
	"github.com/jhoicas/radiator-inventory/pkg/logger"
)

// maxNumberAttempts intentos de la transacción completa ante un número de venta duplicado.
const maxNumberAttempts = 3

// NewSaleNumber genera SAL-YYYYMMDD-HHMMSS-XXXXXX (UTC + 6 hex de un UUID).
func NewSaleNumber(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:6]
	return fmt.Sprintf("SAL-%s-%s", now.UTC().Format("20060102-150405"), strings.ToUpper(suffix))
}

// Options parámetros configurables de la venta.
type Options struct {
	TaxRate      *decimal.Decimal       // nil = sale.DefaultTaxRate
	NumberSource func(time.Time) string // nil = NewSaleNumber
	Clock        func() time.Time       // nil = time.Now().UTC()
}

// CreateSaleUseCase crea una venta y descuenta el inventario en una sola transacción.
type CreateSaleUseCase struct {
	txRunner      SalesTxRunner
	ledger        StockLedger
	customerRepo  repository.CustomerRepository
	radiatorRepo  repository.RadiatorRepository
	warehouseRepo repository.WarehouseRepository
	taxRate       decimal.Decimal
	newNumber     func(time.Time) string
	now           func() time.Time
	metrics       Metrics
	log           *logger.Logger
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner SalesTxRunner,
	ledger StockLedger,
	customerRepo repository.CustomerRepository,
	radiatorRepo repository.RadiatorRepository,
	warehouseRepo repository.WarehouseRepository,
	opts Options,
	metrics Metrics,
	log *logger.Logger,
) *CreateSaleUseCase {
	uc := &CreateSaleUseCase{
		txRunner:      txRunner,
		ledger:        ledger,
		customerRepo:  customerRepo,
		radiatorRepo:  radiatorRepo,
		warehouseRepo: warehouseRepo,
		taxRate:       sale.DefaultTaxRate,
		newNumber:     opts.NumberSource,
		now:           opts.Clock,
		metrics:       metrics,
		log:           log,
	}
	if opts.TaxRate != nil {
		uc.taxRate = *opts.TaxRate
	}
	if uc.newNumber == nil {
		uc.newNumber = NewSaleNumber
	}
	if uc.now == nil {
		uc.now = func() time.Time { return time.Now().UTC() }
	}
	if uc.metrics == nil {
		uc.metrics = NopMetrics
	}
	if uc.log == nil {
		uc.log = logger.Nop()
	}
	uc.log = uc.log.Component("sales")
	return uc
}

// CreateSale valida la venta, calcula totales y dentro de una transacción guarda cabecera y
// líneas y descuenta el stock de cada línea en el orden recibido. Cualquier error deshace todo.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	resp, err := uc.createSale(ctx, userID, in)
	if err != nil {
		uc.metrics.ObserveRejection("create_sale", inventory.Reason(err))
		return nil, err
	}
	return resp, nil
}

func (uc *CreateSaleUseCase) createSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := validateRequest(in); err != nil {
		return nil, err
	}

	// Referencias (fuera de la tx, solo lectura)
	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if customer == nil {
		return nil, domain.NewNotFoundError("customer", in.CustomerID)
	}
	radiators := make(map[string]*entity.Radiator)
	warehouses := make(map[string]*entity.Warehouse)
	for _, it := range in.Items {
		if _, ok := radiators[it.RadiatorID]; !ok {
			r, err := uc.radiatorRepo.GetByID(ctx, it.RadiatorID)
			if err != nil {
				return nil, fmt.Errorf("get radiator: %w", err)
			}
			if r == nil {
				return nil, domain.NewNotFoundError("radiator", it.RadiatorID)
			}
			radiators[it.RadiatorID] = r
		}
		if _, ok := warehouses[it.WarehouseID]; !ok {
			w, err := uc.warehouseRepo.GetByID(ctx, it.WarehouseID)
			if err != nil {
				return nil, fmt.Errorf("get warehouse: %w", err)
			}
			if w == nil {
				return nil, domain.NewNotFoundError("warehouse", it.WarehouseID)
			}
			warehouses[it.WarehouseID] = w
		}
	}

	var (
		s       *entity.Sale
		lastErr error
	)
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		s = uc.buildSale(userID, in, radiators)
		lastErr = uc.persist(ctx, s)
		if lastErr == nil {
			break
		}
		if !isSaleNumberConflict(lastErr) {
			return nil, lastErr
		}
		uc.log.Warn().Str("sale_number", s.SaleNumber).Int("attempt", attempt).Msg("número de venta duplicado, reintentando")
	}
	if lastErr != nil {
		return nil, lastErr
	}

	uc.metrics.ObserveSale(s.Status, s.TotalAmount)
	uc.log.Info().
		Str("sale_id", s.ID).
		Str("sale_number", s.SaleNumber).
		Int("items", len(s.Items)).
		Str("total", s.TotalAmount.StringFixed(2)).
		Msg("venta registrada")

	return ToSaleResponse(s, customer, radiators, warehouses), nil
}

func validateRequest(in dto.CreateSaleRequest) error {
	if strings.TrimSpace(in.CustomerID) == "" {
		return domain.NewValidationError("customerId", "es obligatorio")
	}
	if !sale.ValidPaymentMethod(in.PaymentMethod) {
		return domain.NewValidationError("paymentMethod", fmt.Sprintf("medio de pago no soportado '%s'", in.PaymentMethod))
	}
	if len(in.Items) == 0 {
		return domain.NewValidationError("items", "la venta debe tener al menos una línea")
	}
	for i, it := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		switch {
		case strings.TrimSpace(it.RadiatorID) == "":
			return domain.NewValidationError(field+".radiatorId", "es obligatorio")
		case strings.TrimSpace(it.WarehouseID) == "":
			return domain.NewValidationError(field+".warehouseId", "es obligatorio")
		case it.Quantity <= 0:
			return domain.NewValidationError(field+".quantity", "debe ser mayor que cero")
		case it.UnitPrice != nil && it.UnitPrice.IsNegative():
			return domain.NewValidationError(field+".unitPrice", "no puede ser negativo")
		case it.UnitPrice != nil && !sale.IsCents(*it.UnitPrice):
			return domain.NewValidationError(field+".unitPrice", "admite como máximo 2 decimales")
		}
	}
	return nil
}

// buildSale arma la venta con un ID y número nuevos. Una línea sin precio toma el precio vigente del radiador.
func (uc *CreateSaleUseCase) buildSale(userID string, in dto.CreateSaleRequest, radiators map[string]*entity.Radiator) *entity.Sale {
	now := uc.now()
	s := &entity.Sale{
		ID:            uuid.New().String(),
		SaleNumber:    uc.newNumber(now),
		CustomerID:    in.CustomerID,
		UserID:        userID,
		PaymentMethod: in.PaymentMethod,
		Status:        entity.SaleStatusCompleted,
		Notes:         strings.TrimSpace(in.Notes),
		SaleDate:      now,
		CreatedAt:     now,
		UpdatedAt:     now,
		Items:         make([]*entity.SaleItem, 0, len(in.Items)),
	}
	for _, it := range in.Items {
		var price decimal.Decimal
		if it.UnitPrice != nil {
			price = *it.UnitPrice
		} else {
			price = radiators[it.RadiatorID].EffectivePrice()
		}
		s.Items = append(s.Items, &entity.SaleItem{
			ID:          uuid.New().String(),
			SaleID:      s.ID,
			RadiatorID:  it.RadiatorID,
			WarehouseID: it.WarehouseID,
			Quantity:    it.Quantity,
			UnitPrice:   price,
			CreatedAt:   now,
		})
	}
	t := sale.ComputeTotals(s.Items, uc.taxRate)
	s.SubTotal, s.TaxAmount, s.TotalAmount = t.SubTotal, t.TaxAmount, t.TotalAmount
	return s
}

func (uc *CreateSaleUseCase) persist(ctx context.Context, s *entity.Sale) error {
	if err := sale.ValidateTotals(s); err != nil {
		return err
	}
	return uc.txRunner.RunSale(ctx, func(
		stockRepo repository.StockLevelRepository,
		historyRepo repository.StockHistoryRepository,
		saleRepo repository.SaleRepository,
	) error {
		if err := saleRepo.Create(ctx, s); err != nil {
			return err
		}
		for _, it := range s.Items {
			if err := saleRepo.CreateItem(ctx, it); err != nil {
				return err
			}
		}
		for _, it := range s.Items {
			if _, err := uc.ledger.DecrementForSale(ctx, stockRepo, historyRepo,
				it.RadiatorID, it.WarehouseID, it.Quantity, s.ID, s.UserID, s.CreatedAt); err != nil {
				return err
			}
		}
		return nil
	})
}

func isSaleNumberConflict(err error) bool {
	var cerr *domain.ConflictError
	return errors.As(err, &cerr) && cerr.Resource == "sale"
}

// ToSaleResponse mapea la venta a DTO; los mapas de nombres pueden venir incompletos.
func ToSaleResponse(
	s *entity.Sale,
	customer *entity.Customer,
	radiators map[string]*entity.Radiator,
	warehouses map[string]*entity.Warehouse,
) *dto.SaleResponse {
	out := &dto.SaleResponse{
		ID:            s.ID,
		SaleNumber:    s.SaleNumber,
		CustomerID:    s.CustomerID,
		UserID:        s.UserID,
		PaymentMethod: s.PaymentMethod,
		Status:        s.Status,
		SubTotal:      s.SubTotal,
		TaxAmount:     s.TaxAmount,
		TotalAmount:   s.TotalAmount,
		Notes:         s.Notes,
		SaleDate:      s.SaleDate,
		Items:         make([]dto.SaleItemResponse, 0, len(s.Items)),
	}
	if customer != nil {
		out.CustomerName = customer.FullName()
	}
	for _, it := range s.Items {
		item := dto.SaleItemResponse{
			ID:          it.ID,
			RadiatorID:  it.RadiatorID,
			WarehouseID: it.WarehouseID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
		}
		if r, ok := radiators[it.RadiatorID]; ok {
			item.RadiatorName = r.Name
			item.RadiatorCode = r.Code
		}
		if w, ok := warehouses[it.WarehouseID]; ok {
			item.WarehouseCode = w.Code
		}
		out.Items = append(out.Items, item)
	}
	return out
}
