package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusPending   = "Pending"
	SaleStatusCompleted = "Completed"
	SaleStatusCancelled = "Cancelled"
	SaleStatusRefunded  = "Refunded"
)

// Medios de pago aceptados.
const (
	PaymentCash         = "Cash"
	PaymentCard         = "Card"
	PaymentBankTransfer = "BankTransfer"
	PaymentInvoice      = "Invoice"
)

// Sale cabecera de una venta. Los totales se calculan al crear y se guardan (no se recalculan).
// TotalAmount == SubTotal + TaxAmount y SubTotal == suma de Items[i].TotalPrice.
type Sale struct {
	ID            string
	SaleNumber    string
	CustomerID    string
	UserID        string
	PaymentMethod string
	Status        string
	SubTotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
	Notes         string
	SaleDate      time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []*SaleItem
}

// SaleItem línea de una venta; el precio unitario se captura al momento de vender.
type SaleItem struct {
	ID          string
	SaleID      string
	RadiatorID  string
	WarehouseID string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	CreatedAt   time.Time
}
