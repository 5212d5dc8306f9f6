package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRowDTO fila de los listados de stock bajo / agotado.
type StockRowDTO struct {
	RadiatorID    string    `json:"radiator_id"`
	RadiatorCode  string    `json:"radiator_code"`
	RadiatorBrand string    `json:"radiator_brand"`
	RadiatorName  string    `json:"radiator_name"`
	WarehouseID   string    `json:"warehouse_id"`
	WarehouseCode string    `json:"warehouse_code"`
	WarehouseName string    `json:"warehouse_name"`
	Quantity      int       `json:"quantity"`
	Status        string    `json:"status"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// WarehouseSummaryDTO agregados por bodega.
type WarehouseSummaryDTO struct {
	WarehouseID     string `json:"warehouse_id"`
	WarehouseCode   string `json:"warehouse_code"`
	WarehouseName   string `json:"warehouse_name"`
	RadiatorCount   int    `json:"radiator_count"`
	TotalUnits      int    `json:"total_units"`
	LowStockCount   int    `json:"low_stock_count"`
	OutOfStockCount int    `json:"out_of_stock_count"`
}

// DashboardSummaryDTO respuesta de GET /api/reports/summary.
type DashboardSummaryDTO struct {
	RadiatorCount   int `json:"radiator_count"`
	WarehouseCount  int `json:"warehouse_count"`
	TotalUnits      int `json:"total_units"`
	LowStockCount   int `json:"low_stock_count"`
	OutOfStockCount int `json:"out_of_stock_count"`

	TodaySalesCount   int             `json:"today_sales_count"`
	TodayRevenue      decimal.Decimal `json:"today_revenue"`
	MonthlySalesCount int             `json:"monthly_sales_count"`
	MonthlyRevenue    decimal.Decimal `json:"monthly_revenue"`

	Warehouses []WarehouseSummaryDTO `json:"warehouses"`
	DateLabel  string                `json:"date_label"` // ej: "October 2026"
}

// MovementDTO entrada del feed de movimientos.
type MovementDTO struct {
	ID             string    `json:"id"`
	RadiatorID     string    `json:"radiator_id"`
	RadiatorCode   string    `json:"radiator_code"`
	RadiatorName   string    `json:"radiator_name"`
	WarehouseID    string    `json:"warehouse_id"`
	WarehouseCode  string    `json:"warehouse_code"`
	WarehouseName  string    `json:"warehouse_name"`
	OldQuantity    int       `json:"old_quantity"`
	NewQuantity    int       `json:"new_quantity"`
	QuantityChange int       `json:"quantity_change"`
	MovementType   string    `json:"movement_type"`
	ChangeType     string    `json:"change_type"`
	SaleID         string    `json:"sale_id,omitempty"`
	SaleNumber     string    `json:"sale_number,omitempty"`
	CustomerName   string    `json:"customer_name,omitempty"`
	UpdatedByName  string    `json:"updated_by_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// MovementFeedResponse feed paginado de movimientos.
type MovementFeedResponse struct {
	Items []MovementDTO `json:"items"`
	Page  PageResponse  `json:"page"`
}
