package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/radiator-inventory/internal/domain"
	"github.com/jhoicas/radiator-inventory/internal/domain/repository"
)

// ReceiptUseCase genera el recibo PDF de una venta.
type ReceiptUseCase struct {
	saleRepo      repository.SaleRepository
	customerRepo  repository.CustomerRepository
	radiatorRepo  repository.RadiatorRepository
	warehouseRepo repository.WarehouseRepository
	generator     ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	radiatorRepo repository.RadiatorRepository,
	warehouseRepo repository.WarehouseRepository,
	generator ReceiptGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		saleRepo:      saleRepo,
		customerRepo:  customerRepo,
		radiatorRepo:  radiatorRepo,
		warehouseRepo: warehouseRepo,
		generator:     generator,
	}
}

// Receipt carga la venta con sus líneas y nombres y devuelve (pdfBytes, filename).
func (uc *ReceiptUseCase) Receipt(ctx context.Context, saleID string) ([]byte, string, error) {
	s, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener venta: %w", err)
	}
	if s == nil {
		return nil, "", domain.NewNotFoundError("sale", saleID)
	}
	customer, err := uc.customerRepo.GetByID(ctx, s.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, "", domain.NewNotFoundError("customer", s.CustomerID)
	}

	lines := make([]ReceiptLine, 0, len(s.Items))
	for _, it := range s.Items {
		line := ReceiptLine{SaleItem: *it, RadiatorName: "Radiador " + it.RadiatorID}
		if r, rErr := uc.radiatorRepo.GetByID(ctx, it.RadiatorID); rErr == nil && r != nil {
			line.RadiatorName = r.Brand + " " + r.Name
			line.RadiatorCode = r.Code
		}
		if w, wErr := uc.warehouseRepo.GetByID(ctx, it.WarehouseID); wErr == nil && w != nil {
			line.WarehouseCode = w.Code
		}
		lines = append(lines, line)
	}

	pdfBytes, err := uc.generator.GenerateReceipt(ctx, s, customer, lines)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("recibo_%s.pdf", s.SaleNumber), nil
}
