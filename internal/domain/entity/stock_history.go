package entity

import "time"

// Tipos de movimiento del libro de stock.
const (
	MovementIncoming = "INCOMING"
	MovementOutgoing = "OUTGOING"
)

// Motivos de cambio conocidos. ChangeType es texto libre; estos son los que emite el sistema.
const (
	ChangeTypeManualUpdate  = "Manual Update"
	ChangeTypeSale          = "Sale"
	ChangeTypeBulkUpdate    = "Bulk Update"
	ChangeTypeSaleCancelled = "Sale Cancelled"
	ChangeTypeSaleRefunded  = "Sale Refunded"
)

// StockHistory registro inmutable de un cambio de stock.
// NewQuantity - OldQuantity == QuantityChange siempre.
type StockHistory struct {
	ID             string
	RadiatorID     string
	WarehouseID    string
	OldQuantity    int
	NewQuantity    int
	QuantityChange int
	MovementType   string
	ChangeType     string
	SaleID         *string // referencia débil; queda NULL si se elimina la venta
	UpdatedBy      *string
	CreatedAt      time.Time
}
