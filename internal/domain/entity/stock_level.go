package entity

import "time"

// StockLevel cantidad actual de un radiador en una bodega.
// Existe una sola fila por par (RadiatorID, WarehouseID); se crea en el primer ajuste.
type StockLevel struct {
	ID          string
	RadiatorID  string
	WarehouseID string
	Quantity    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
