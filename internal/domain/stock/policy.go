// Package stock contiene las reglas puras del libro de stock (servicio de dominio, sin IO).
package stock

import (
	"regexp"

	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
)

// LowStockThreshold umbral fijo de "stock bajo" (política global, no por producto).
const LowStockThreshold = 5

// Clasificaciones de estado de stock.
const (
	StatusOutOfStock = "Out of Stock"
	StatusLowStock   = "Low Stock"
	StatusGood       = "Good"
)

var warehouseCodePattern = regexp.MustCompile(`^[A-Z0-9_]{2,20}$`)

// Status clasifica una cantidad: 0 → Out of Stock; 1..5 → Low Stock; >5 → Good.
func Status(quantity int) string {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity <= LowStockThreshold:
		return StatusLowStock
	default:
		return StatusGood
	}
}

// MovementType deriva el tipo de movimiento del signo del cambio.
// Un cambio de cero se registra como INCOMING.
func MovementType(change int) string {
	if change < 0 {
		return entity.MovementOutgoing
	}
	return entity.MovementIncoming
}

// ValidWarehouseCode indica si el código de bodega tiene el formato esperado (ej: WH_AKL).
func ValidWarehouseCode(code string) bool {
	return warehouseCodePattern.MatchString(code)
}

// NewHistory arma el registro de historial para un cambio old → new.
// El caller asigna ID, SaleID, UpdatedBy y CreatedAt.
func NewHistory(radiatorID, warehouseID string, oldQty, newQty int, changeType string) *entity.StockHistory {
	change := newQty - oldQty
	return &entity.StockHistory{
		RadiatorID:     radiatorID,
		WarehouseID:    warehouseID,
		OldQuantity:    oldQty,
		NewQuantity:    newQty,
		QuantityChange: change,
		MovementType:   MovementType(change),
		ChangeType:     changeType,
	}
}
