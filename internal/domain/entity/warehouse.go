package entity

import "time"

// Warehouse representa una bodega o sucursal donde se almacena inventario (multi-bodega).
// Code es el identificador legible (ej: "WH_AKL") con el que operan los ajustes de stock.
type Warehouse struct {
	ID        string
	Code      string
	Name      string
	Location  string
	Address   string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
