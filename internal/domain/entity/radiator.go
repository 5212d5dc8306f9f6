package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Radiator representa un producto del catálogo. El stock por bodega vive en StockLevel.
type Radiator struct {
	ID                string
	Brand             string
	Code              string // código único del catálogo
	Name              string
	Year              int
	RetailPrice       decimal.Decimal
	TradePrice        decimal.Decimal
	IsPriceOverridden bool
	OverriddenPrice   *decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// EffectivePrice precio de venta sugerido: el sobreescrito si existe, si no el de lista.
func (r *Radiator) EffectivePrice() decimal.Decimal {
	if r.IsPriceOverridden && r.OverriddenPrice != nil {
		return *r.OverriddenPrice
	}
	return r.RetailPrice
}
