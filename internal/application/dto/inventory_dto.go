package dto

import "time"

// AdjustStockRequest body para PUT /api/stock/:radiator_id (cantidad absoluta).
type AdjustStockRequest struct {
	WarehouseCode string `json:"warehouse_code"`
	Quantity      int    `json:"quantity"`
	Reason        string `json:"reason,omitempty"` // vacío = "Manual Update"
}

// BulkStockItem una entrada del ajuste masivo.
type BulkStockItem struct {
	RadiatorID    string `json:"radiator_id"`
	WarehouseCode string `json:"warehouse_code"`
	Quantity      int    `json:"quantity"`
}

// BulkAdjustStockRequest body para POST /api/stock/bulk.
type BulkAdjustStockRequest struct {
	Items []BulkStockItem `json:"items"`
}

// BulkItemError error de una entrada concreta del lote.
type BulkItemError struct {
	Index         int    `json:"index"`
	RadiatorID    string `json:"radiator_id"`
	WarehouseCode string `json:"warehouse_code"`
	Message       string `json:"message"`
}

// BulkAdjustStockResponse resumen del ajuste masivo.
type BulkAdjustStockResponse struct {
	SuccessCount int             `json:"success_count"`
	ErrorCount   int             `json:"error_count"`
	Errors       []BulkItemError `json:"errors"`
}

// StockHistoryResponse registro de historial.
type StockHistoryResponse struct {
	ID             string    `json:"id"`
	RadiatorID     string    `json:"radiator_id"`
	WarehouseID    string    `json:"warehouse_id"`
	OldQuantity    int       `json:"old_quantity"`
	NewQuantity    int       `json:"new_quantity"`
	QuantityChange int       `json:"quantity_change"`
	MovementType   string    `json:"movement_type"`
	ChangeType     string    `json:"change_type"`
	SaleID         *string   `json:"sale_id,omitempty"`
	UpdatedBy      *string   `json:"updated_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// WarehouseStockDTO stock de un radiador en una bodega.
type WarehouseStockDTO struct {
	WarehouseID   string    `json:"warehouse_id"`
	WarehouseCode string    `json:"warehouse_code"`
	WarehouseName string    `json:"warehouse_name"`
	Quantity      int       `json:"quantity"`
	Status        string    `json:"status"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RadiatorStockResponse stock de un radiador desglosado por bodega.
type RadiatorStockResponse struct {
	RadiatorID string              `json:"radiator_id"`
	TotalStock int                 `json:"total_stock"`
	Status     string              `json:"status"`
	Warehouses []WarehouseStockDTO `json:"warehouses"`
}

// StockHistoryListResponse lista paginada de historial.
type StockHistoryListResponse struct {
	Items []StockHistoryResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
