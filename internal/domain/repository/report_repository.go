package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockFilter filtro de cantidades para listados de stock.
// MaxQuantity nil = sin tope. WarehouseID vacío = todas las bodegas.
type StockFilter struct {
	WarehouseID string
	MinQuantity int
	MaxQuantity *int
	Limit       int
	Offset      int
}

// StockRow fila de stock decorada con nombres de radiador y bodega.
type StockRow struct {
	RadiatorID    string
	RadiatorCode  string
	RadiatorBrand string
	RadiatorName  string
	WarehouseID   string
	WarehouseCode string
	WarehouseName string
	Quantity      int
	UpdatedAt     time.Time
}

// WarehouseSummary agregados de una bodega.
type WarehouseSummary struct {
	WarehouseID     string
	WarehouseCode   string
	WarehouseName   string
	RadiatorCount   int
	TotalUnits      int
	LowStockCount   int
	OutOfStockCount int
}

// StockTotals agregados globales del inventario.
type StockTotals struct {
	RadiatorCount   int
	WarehouseCount  int
	TotalUnits      int
	LowStockCount   int
	OutOfStockCount int
}

// MovementFilter filtro del feed de movimientos.
type MovementFilter struct {
	RadiatorID   string
	WarehouseID  string
	MovementType string
	From, To     *time.Time
}

// MovementRow movimiento del historial con nombres para mostrar.
type MovementRow struct {
	ID             string
	RadiatorID     string
	RadiatorCode   string
	RadiatorName   string
	WarehouseID    string
	WarehouseCode  string
	WarehouseName  string
	OldQuantity    int
	NewQuantity    int
	QuantityChange int
	MovementType   string
	ChangeType     string
	SaleID         string
	SaleNumber     string
	CustomerName   string
	UpdatedByName  string
	CreatedAt      time.Time
}

// ReportRepository consultas de solo lectura sobre el libro de stock y las ventas.
// Los umbrales (bajo / agotado) los pasa el caso de uso.
type ReportRepository interface {
	ListStock(ctx context.Context, filter StockFilter) ([]StockRow, error)
	WarehouseSummaries(ctx context.Context, lowThreshold int) ([]WarehouseSummary, error)
	StockTotals(ctx context.Context, lowThreshold int) (StockTotals, error)
	// SalesTotals excluye ventas canceladas y reembolsadas.
	SalesTotals(ctx context.Context, from, to time.Time) (count int, revenue decimal.Decimal, err error)
	MovementFeed(ctx context.Context, filter MovementFilter, limit, offset int) ([]MovementRow, int, error)
}
