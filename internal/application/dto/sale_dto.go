package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	CustomerID    string            `json:"customer_id"`
	PaymentMethod string            `json:"payment_method"`
	Items         []SaleItemRequest `json:"items"`
	Notes         string            `json:"notes,omitempty"`
}

// SaleItemRequest línea de venta (radiador, bodega, cantidad, precio unitario).
// Sin unit_price se usa el precio vigente del radiador; un cero explícito se respeta.
type SaleItemRequest struct {
	RadiatorID  string           `json:"radiator_id"`
	WarehouseID string           `json:"warehouse_id"`
	Quantity    int              `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
}

// UpdateSaleStatusRequest body para PATCH /api/sales/:id/status.
// Restock=true devuelve las cantidades al stock en la misma transacción.
type UpdateSaleStatusRequest struct {
	Status  string `json:"status"`
	Restock bool   `json:"restock"`
}

// SaleResponse venta completa con cliente y líneas resueltas.
type SaleResponse struct {
	ID            string             `json:"id"`
	SaleNumber    string             `json:"sale_number"`
	CustomerID    string             `json:"customer_id"`
	CustomerName  string             `json:"customer_name,omitempty"`
	UserID        string             `json:"user_id"`
	PaymentMethod string             `json:"payment_method"`
	Status        string             `json:"status"`
	SubTotal      decimal.Decimal    `json:"sub_total"`
	TaxAmount     decimal.Decimal    `json:"tax_amount"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	Notes         string             `json:"notes,omitempty"`
	SaleDate      time.Time          `json:"sale_date"`
	Items         []SaleItemResponse `json:"items"`
}

// SaleItemResponse línea de venta en la respuesta.
type SaleItemResponse struct {
	ID            string          `json:"id"`
	RadiatorID    string          `json:"radiator_id"`
	RadiatorName  string          `json:"radiator_name,omitempty"`
	RadiatorCode  string          `json:"radiator_code,omitempty"`
	WarehouseID   string          `json:"warehouse_id"`
	WarehouseCode string          `json:"warehouse_code,omitempty"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

// SaleListResponse lista paginada de ventas (sin líneas).
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
