package reporting_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/radiator-inventory/internal/application/dto"
	"github.com/jhoicas/radiator-inventory/internal/application/inventory"
	"github.com/jhoicas/radiator-inventory/internal/application/reporting"
	"github.com/jhoicas/radiator-inventory/internal/application/sales"
	"github.com/jhoicas/radiator-inventory/internal/domain"
	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
	"github.com/jhoicas/radiator-inventory/internal/infrastructure/memory"
)

type fakeSheets struct{ rows []dto.StockRowDTO }

func (f *fakeSheets) WriteStock(rows []dto.StockRowDTO) ([]byte, error) {
	f.rows = rows
	return []byte("xlsx"), nil
}

func price(v int64) *decimal.Decimal {
	p := decimal.NewFromInt(v)
	return &p
}

type env struct {
	store  *memory.Store
	report *reporting.ReportUseCase
	sheets *fakeSheets
	saleID string
}

// setup: KOY@AKL=0, DEN@AKL=3, KOY@WLG=12 y luego una venta de 2 KOY desde WLG (queda 10)
// más una venta cancelada de 1 DEN desde AKL (queda 2).
func setup(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Radiators().Create(ctx, &entity.Radiator{ID: "koy", Brand: "Koyo", Code: "KOY-1", Name: "Corolla", RetailPrice: decimal.NewFromInt(100)}))
	require.NoError(t, store.Radiators().Create(ctx, &entity.Radiator{ID: "den", Brand: "Denso", Code: "DEN-1", Name: "Hilux", RetailPrice: decimal.NewFromInt(200)}))
	require.NoError(t, store.Warehouses().Create(ctx, &entity.Warehouse{ID: "akl", Code: "WH_AKL", Name: "Auckland"}))
	require.NoError(t, store.Warehouses().Create(ctx, &entity.Warehouse{ID: "wlg", Code: "WH_WLG", Name: "Wellington"}))
	require.NoError(t, store.Customers().Create(ctx, &entity.Customer{ID: "c1", FirstName: "Mere", LastName: "Tane"}))
	require.NoError(t, store.Users().Create(ctx, &entity.User{ID: "u1", Email: "ops@example.com", FirstName: "Ops", LastName: "Team", Role: "manager", IsActive: true}))

	ledger := inventory.NewLedgerUseCase(store, store.Radiators(), store.Warehouses(), store.StockLevels(), store.History(), nil, nil)
	for _, in := range []inventory.AdjustInput{
		{RadiatorID: "koy", WarehouseCode: "WH_AKL", Quantity: 0},
		{RadiatorID: "den", WarehouseCode: "WH_AKL", Quantity: 3},
		{RadiatorID: "koy", WarehouseCode: "WH_WLG", Quantity: 12},
	} {
		_, err := ledger.AdjustStock(ctx, in)
		require.NoError(t, err)
	}

	create := sales.NewCreateSaleUseCase(store, ledger, store.Customers(), store.Radiators(), store.Warehouses(), sales.Options{}, nil, nil)
	sold, err := create.CreateSale(ctx, "u1", dto.CreateSaleRequest{
		CustomerID: "c1", PaymentMethod: entity.PaymentCard,
		Items: []dto.SaleItemRequest{{RadiatorID: "koy", WarehouseID: "wlg", Quantity: 2, UnitPrice: price(100)}},
	})
	require.NoError(t, err)
	cancelled, err := create.CreateSale(ctx, "u1", dto.CreateSaleRequest{
		CustomerID: "c1", PaymentMethod: entity.PaymentCash,
		Items: []dto.SaleItemRequest{{RadiatorID: "den", WarehouseID: "akl", Quantity: 1, UnitPrice: price(200)}},
	})
	require.NoError(t, err)
	admin := sales.NewSaleAdminUseCase(store, ledger, store.Sales(), store.Customers(), store.Radiators(), store.Warehouses(), nil, nil)
	_, err = admin.UpdateSaleStatus(ctx, cancelled.ID, "u1", dto.UpdateSaleStatusRequest{Status: entity.SaleStatusCancelled})
	require.NoError(t, err)

	sheets := &fakeSheets{}
	return &env{
		store:  store,
		report: reporting.NewReportUseCase(store.Reports(), store.Warehouses(), sheets),
		sheets: sheets,
		saleID: sold.ID,
	}
}

func TestLowAndOutOfStock(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	low, err := e.report.LowStock(ctx, "", 0, 0)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "DEN-1", low[0].RadiatorCode)
	assert.Equal(t, 2, low[0].Quantity)
	assert.Equal(t, "Low Stock", low[0].Status)

	out, err := e.report.OutOfStock(ctx, "", 0, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "KOY-1", out[0].RadiatorCode)
	assert.Equal(t, "WH_AKL", out[0].WarehouseCode)
	assert.Equal(t, "Out of Stock", out[0].Status)

	none, err := e.report.OutOfStock(ctx, "WH_WLG", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = e.report.LowStock(ctx, "WH_XXX", 0, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWarehouseSummaries(t *testing.T) {
	e := setup(t)

	list, err := e.report.WarehouseSummaries(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	akl := list[0]
	assert.Equal(t, "WH_AKL", akl.WarehouseCode)
	assert.Equal(t, 2, akl.RadiatorCount)
	assert.Equal(t, 2, akl.TotalUnits)
	assert.Equal(t, 1, akl.LowStockCount)
	assert.Equal(t, 1, akl.OutOfStockCount)

	wlg := list[1]
	assert.Equal(t, 1, wlg.RadiatorCount)
	assert.Equal(t, 10, wlg.TotalUnits)
	assert.Zero(t, wlg.LowStockCount)
}

func TestSummary_ExcludesCancelledSales(t *testing.T) {
	e := setup(t)

	s, err := e.report.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, s.RadiatorCount)
	assert.Equal(t, 2, s.WarehouseCount)
	assert.Equal(t, 12, s.TotalUnits)
	assert.Equal(t, 1, s.LowStockCount)
	assert.Equal(t, 1, s.OutOfStockCount)
	assert.Equal(t, 1, s.TodaySalesCount)
	assert.Equal(t, "230.00", s.TodayRevenue.StringFixed(2))
	assert.Equal(t, 1, s.MonthlySalesCount)
	assert.Len(t, s.Warehouses, 2)
	assert.NotEmpty(t, s.DateLabel)
}

func TestMovementFeed(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	all, err := e.report.MovementFeed(ctx, reporting.MovementQuery{}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, all.Page.Total)
	assert.Len(t, all.Items, 5)

	out, err := e.report.MovementFeed(ctx, reporting.MovementQuery{MovementType: "outgoing", WarehouseCode: "WH_WLG"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	m := out.Items[0]
	assert.Equal(t, e.saleID, m.SaleID)
	assert.NotEmpty(t, m.SaleNumber)
	assert.Equal(t, "Mere Tane", m.CustomerName)
	assert.Equal(t, "Ops Team", m.UpdatedByName)
	assert.Equal(t, "Corolla", m.RadiatorName)
	assert.Equal(t, -2, m.QuantityChange)

	future := time.Now().Add(time.Hour)
	empty, err := e.report.MovementFeed(ctx, reporting.MovementQuery{From: &future}, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)

	_, err = e.report.MovementFeed(ctx, reporting.MovementQuery{MovementType: "SIDEWAYS"}, 10, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExportStock(t *testing.T) {
	e := setup(t)

	data, filename, err := e.report.ExportStock(context.Background(), "WH_AKL")
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
	assert.Regexp(t, `^stock_WH_AKL_\d{8}\.xlsx$`, filename)
	assert.Len(t, e.sheets.rows, 2)
}
