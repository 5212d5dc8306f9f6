// Package sale contiene el cálculo y la validación de totales de una venta.
package sale

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
)

// DefaultTaxRate tasa de impuesto por defecto (GST 15%).
var DefaultTaxRate = decimal.NewFromFloat(0.15)

// ErrInconsistentTotals agrupa errores de totales incoherentes.
var ErrInconsistentTotals = errors.New("totales de la venta inconsistentes")

// ParseTaxRate interpreta la tasa configurada; debe ser un decimal entre 0 y 1.
func ParseTaxRate(raw string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("tasa de impuesto '%s': %w", raw, err)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("tasa de impuesto '%s' fuera de rango [0, 1]", raw)
	}
	return rate, nil
}

// IsCents indica si el monto tiene como máximo 2 decimales.
func IsCents(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(2))
}

// Totals resultado del cálculo de una venta.
type Totals struct {
	SubTotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

// ComputeTotals asigna TotalPrice a cada línea y calcula subtotal, impuesto y total.
// El precio unitario y el impuesto se redondean a 2 decimales; total = subtotal + impuesto.
func ComputeTotals(items []*entity.SaleItem, taxRate decimal.Decimal) Totals {
	subTotal := decimal.Zero
	for _, it := range items {
		it.UnitPrice = it.UnitPrice.Round(2)
		it.TotalPrice = it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))).Round(2)
		subTotal = subTotal.Add(it.TotalPrice)
	}
	tax := subTotal.Mul(taxRate).Round(2)
	return Totals{
		SubTotal:    subTotal,
		TaxAmount:   tax,
		TotalAmount: subTotal.Add(tax),
	}
}

// ValidateTotals comprueba que los totales guardados coincidan con las líneas.
func ValidateTotals(s *entity.Sale) error {
	if s == nil {
		return fmt.Errorf("%w: venta nula", ErrInconsistentTotals)
	}
	var errs []error
	sum := decimal.Zero
	for _, it := range s.Items {
		sum = sum.Add(it.TotalPrice)
	}
	if !s.SubTotal.Equal(sum) {
		errs = append(errs, fmt.Errorf("subtotal (%s) no coincide con la suma de líneas (%s)", s.SubTotal, sum))
	}
	if !s.TotalAmount.Equal(s.SubTotal.Add(s.TaxAmount)) {
		errs = append(errs, fmt.Errorf("total (%s) no coincide con subtotal + impuesto (%s)", s.TotalAmount, s.SubTotal.Add(s.TaxAmount)))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInconsistentTotals}, errs...)...)
	}
	return nil
}

// transitions estados destino permitidos desde cada estado.
var transitions = map[string][]string{
	entity.SaleStatusPending:   {entity.SaleStatusCompleted, entity.SaleStatusCancelled},
	entity.SaleStatusCompleted: {entity.SaleStatusCancelled, entity.SaleStatusRefunded},
}

// CanTransition indica si una venta puede pasar de from a to.
func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidPaymentMethod indica si el medio de pago es aceptado.
func ValidPaymentMethod(m string) bool {
	switch m {
	case entity.PaymentCash, entity.PaymentCard, entity.PaymentBankTransfer, entity.PaymentInvoice:
		return true
	}
	return false
}
