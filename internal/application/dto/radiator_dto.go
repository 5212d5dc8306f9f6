package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRadiatorRequest entrada para crear un radiador.
type CreateRadiatorRequest struct {
	Brand       string          `json:"brand"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Year        int             `json:"year"`
	RetailPrice decimal.Decimal `json:"retail_price"`
	TradePrice  decimal.Decimal `json:"trade_price"`
}

// UpdateRadiatorRequest entrada para actualizar un radiador (el stock se maneja vía ajustes).
type UpdateRadiatorRequest struct {
	Brand           *string          `json:"brand"`
	Name            *string          `json:"name"`
	Year            *int             `json:"year"`
	RetailPrice     *decimal.Decimal `json:"retail_price"`
	TradePrice      *decimal.Decimal `json:"trade_price"`
	OverriddenPrice *decimal.Decimal `json:"overridden_price"`
	ClearOverride   bool             `json:"clear_override"`
}

// RadiatorResponse salida de un radiador con su stock total.
type RadiatorResponse struct {
	ID                string           `json:"id"`
	Brand             string           `json:"brand"`
	Code              string           `json:"code"`
	Name              string           `json:"name"`
	Year              int              `json:"year"`
	RetailPrice       decimal.Decimal  `json:"retail_price"`
	TradePrice        decimal.Decimal  `json:"trade_price"`
	IsPriceOverridden bool             `json:"is_price_overridden"`
	OverriddenPrice   *decimal.Decimal `json:"overridden_price,omitempty"`
	TotalStock        int              `json:"total_stock"`
	StockStatus       string           `json:"stock_status"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// RadiatorListResponse lista paginada de radiadores.
type RadiatorListResponse struct {
	Items []RadiatorResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
