package sales_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/radiator-inventory/internal/application/dto"
	"github.com/jhoicas/radiator-inventory/internal/application/inventory"
	"github.com/jhoicas/radiator-inventory/internal/application/sales"
	"github.com/jhoicas/radiator-inventory/internal/domain"
	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
	"github.com/jhoicas/radiator-inventory/internal/infrastructure/memory"
)

const (
	radA     = "rad-a"
	radB     = "rad-b"
	whAKL    = "wh-akl"
	customer = "cust-1"
	seller   = "user-1"
)

type fixture struct {
	store  *memory.Store
	ledger *inventory.LedgerUseCase
	create *sales.CreateSaleUseCase
	admin  *sales.SaleAdminUseCase
}

func newFixture(t *testing.T, opts sales.Options) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	override := decimal.NewFromInt(280)
	require.NoError(t, store.Radiators().Create(ctx, &entity.Radiator{
		ID: radA, Brand: "Koyo", Code: "KOY-1001", Name: "Corolla 1.8",
		RetailPrice: decimal.NewFromInt(320), TradePrice: decimal.NewFromInt(250),
	}))
	require.NoError(t, store.Radiators().Create(ctx, &entity.Radiator{
		ID: radB, Brand: "Denso", Code: "DEN-2002", Name: "Hilux 3.0",
		RetailPrice: decimal.NewFromInt(450), IsPriceOverridden: true, OverriddenPrice: &override,
	}))
	require.NoError(t, store.Warehouses().Create(ctx, &entity.Warehouse{ID: whAKL, Code: "WH_AKL", Name: "Auckland"}))
	require.NoError(t, store.Customers().Create(ctx, &entity.Customer{ID: customer, FirstName: "Aroha", LastName: "Ngata"}))

	ledger := inventory.NewLedgerUseCase(store, store.Radiators(), store.Warehouses(), store.StockLevels(), store.History(), nil, nil)
	return &fixture{
		store:  store,
		ledger: ledger,
		create: sales.NewCreateSaleUseCase(store, ledger, store.Customers(), store.Radiators(), store.Warehouses(), opts, nil, nil),
		admin:  sales.NewSaleAdminUseCase(store, ledger, store.Sales(), store.Customers(), store.Radiators(), store.Warehouses(), nil, nil),
	}
}

func (f *fixture) stock(t *testing.T, radiatorID string, q int) {
	t.Helper()
	_, err := f.ledger.AdjustStock(context.Background(), inventory.AdjustInput{
		RadiatorID: radiatorID, WarehouseCode: "WH_AKL", Quantity: q, ChangeType: "Initial stock",
	})
	require.NoError(t, err)
}

func saleOf(items ...dto.SaleItemRequest) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{CustomerID: customer, PaymentMethod: entity.PaymentCash, Items: items}
}

func line(radiatorID string, q int, price string) dto.SaleItemRequest {
	p := decimal.RequireFromString(price)
	return dto.SaleItemRequest{RadiatorID: radiatorID, WarehouseID: whAKL, Quantity: q, UnitPrice: &p}
}

func rate(v string) *decimal.Decimal {
	r := decimal.RequireFromString(v)
	return &r
}

func TestCreateSale_LedgerScenario(t *testing.T) {
	f := newFixture(t, sales.Options{})
	ctx := context.Background()
	f.stock(t, radA, 10)

	resp, err := f.create.CreateSale(ctx, seller, saleOf(line(radA, 3, "300")))
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCompleted, resp.Status)
	assert.Equal(t, "Aroha Ngata", resp.CustomerName)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Corolla 1.8", resp.Items[0].RadiatorName)
	assert.Equal(t, "WH_AKL", resp.Items[0].WarehouseCode)

	q, _ := f.store.Quantity(radA, whAKL)
	assert.Equal(t, 7, q)
	history := f.store.HistoryFor(radA, whAKL)
	require.Len(t, history, 2)
	h := history[1]
	assert.Equal(t, 10, h.OldQuantity)
	assert.Equal(t, 7, h.NewQuantity)
	assert.Equal(t, -3, h.QuantityChange)
	assert.Equal(t, entity.MovementOutgoing, h.MovementType)
	assert.Equal(t, entity.ChangeTypeSale, h.ChangeType)
	require.NotNil(t, h.SaleID)
	assert.Equal(t, resp.ID, *h.SaleID)

	_, err = f.create.CreateSale(ctx, seller, saleOf(line(radA, 20, "300")))
	var serr *domain.InsufficientStockError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, radA, serr.RadiatorID)
	assert.Equal(t, whAKL, serr.WarehouseID)
	assert.Equal(t, 20, serr.Requested)
	assert.Equal(t, 7, serr.Available)

	q, _ = f.store.Quantity(radA, whAKL)
	assert.Equal(t, 7, q)
	_, historyRows, salesRows, itemRows := f.store.Counts()
	assert.Equal(t, 2, historyRows)
	assert.Equal(t, 1, salesRows)
	assert.Equal(t, 1, itemRows)
}

func TestCreateSale_AllOrNothing(t *testing.T) {
	f := newFixture(t, sales.Options{})
	f.stock(t, radA, 5)
	f.stock(t, radB, 1)
	levelsBefore, historyBefore, _, _ := f.store.Counts()

	_, err := f.create.CreateSale(context.Background(), seller, saleOf(
		line(radA, 2, "300"),
		line(radB, 4, "450"),
	))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	levels, history, salesRows, itemRows := f.store.Counts()
	assert.Equal(t, levelsBefore, levels)
	assert.Equal(t, historyBefore, history)
	assert.Zero(t, salesRows)
	assert.Zero(t, itemRows)
	q, _ := f.store.Quantity(radA, whAKL)
	assert.Equal(t, 5, q, "la primera línea no debe quedar descontada")
}

func TestCreateSale_Totals(t *testing.T) {
	f := newFixture(t, sales.Options{})
	f.stock(t, radA, 10)
	f.stock(t, radB, 10)

	resp, err := f.create.CreateSale(context.Background(), seller, saleOf(
		line(radA, 2, "100.50"),
		line(radB, 1, "19.99"),
	))
	require.NoError(t, err)

	sum := decimal.Zero
	for _, it := range resp.Items {
		sum = sum.Add(it.TotalPrice)
	}
	assert.True(t, sum.Equal(resp.SubTotal))
	assert.Equal(t, "220.99", resp.SubTotal.StringFixed(2))
	assert.Equal(t, "33.15", resp.TaxAmount.StringFixed(2))
	assert.True(t, resp.TotalAmount.Equal(resp.SubTotal.Add(resp.TaxAmount)))

	stored, err := f.admin.GetSale(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.True(t, stored.TotalAmount.Equal(resp.TotalAmount))
	assert.Len(t, stored.Items, 2)
}

func TestCreateSale_ConfiguredTaxRate(t *testing.T) {
	f := newFixture(t, sales.Options{TaxRate: rate("0.10")})
	f.stock(t, radA, 2)

	resp, err := f.create.CreateSale(context.Background(), seller, saleOf(line(radA, 1, "280")))
	require.NoError(t, err)
	assert.Equal(t, "28.00", resp.TaxAmount.StringFixed(2))
	assert.Equal(t, "308.00", resp.TotalAmount.StringFixed(2))
}

func TestCreateSale_ZeroTaxRateIsKept(t *testing.T) {
	f := newFixture(t, sales.Options{TaxRate: rate("0")})
	f.stock(t, radA, 2)

	resp, err := f.create.CreateSale(context.Background(), seller, saleOf(line(radA, 1, "100.00")))
	require.NoError(t, err)
	assert.True(t, resp.TaxAmount.IsZero(), resp.TaxAmount.String())
	assert.Equal(t, "100.00", resp.TotalAmount.StringFixed(2))
}

func TestCreateSale_ZeroPriceIsRecordedAsSent(t *testing.T) {
	f := newFixture(t, sales.Options{})
	f.stock(t, radA, 5)

	resp, err := f.create.CreateSale(context.Background(), seller, saleOf(line(radA, 2, "0")))
	require.NoError(t, err)
	assert.True(t, resp.Items[0].UnitPrice.IsZero(), resp.Items[0].UnitPrice.String())
	assert.True(t, resp.Items[0].TotalPrice.IsZero())
	assert.True(t, resp.SubTotal.IsZero(), resp.SubTotal.String())
	assert.True(t, resp.TotalAmount.IsZero())
	q, _ := f.store.Quantity(radA, whAKL)
	assert.Equal(t, 3, q)
}

func TestCreateSale_MissingPriceUsesCatalogPrice(t *testing.T) {
	f := newFixture(t, sales.Options{})
	f.stock(t, radB, 2)

	in := saleOf(dto.SaleItemRequest{RadiatorID: radB, WarehouseID: whAKL, Quantity: 1})
	resp, err := f.create.CreateSale(context.Background(), seller, in)
	require.NoError(t, err)
	assert.Equal(t, "280.00", resp.Items[0].UnitPrice.StringFixed(2), "precio sobreescrito del radiador")
	assert.Equal(t, "280.00", resp.SubTotal.StringFixed(2))
}

func TestCreateSale_RejectsBeforeAnyWrite(t *testing.T) {
	cases := []struct {
		name  string
		in    dto.CreateSaleRequest
		field string
	}{
		{"sin líneas", saleOf(), "items"},
		{"cantidad cero", saleOf(line(radA, 0, "10")), "items[0].quantity"},
		{"precio negativo", saleOf(line(radA, 1, "-1")), "items[0].unitPrice"},
		{"precio con fracción de centavo", saleOf(line(radA, 3, "0.005")), "items[0].unitPrice"},
		{"medio de pago", dto.CreateSaleRequest{CustomerID: customer, PaymentMethod: "Bitcoin", Items: []dto.SaleItemRequest{line(radA, 1, "1")}}, "paymentMethod"},
		{"sin cliente", dto.CreateSaleRequest{PaymentMethod: entity.PaymentCard, Items: []dto.SaleItemRequest{line(radA, 1, "1")}}, "customerId"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, sales.Options{})
			f.stock(t, radA, 5)

			_, err := f.create.CreateSale(context.Background(), seller, tc.in)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)

			_, history, salesRows, _ := f.store.Counts()
			assert.Equal(t, 1, history)
			assert.Zero(t, salesRows)
		})
	}
}

func TestCreateSale_UnknownReferences(t *testing.T) {
	f := newFixture(t, sales.Options{})
	f.stock(t, radA, 5)
	ctx := context.Background()

	in := saleOf(line(radA, 1, "10"))
	in.CustomerID = "ghost"
	_, err := f.create.CreateSale(ctx, seller, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.create.CreateSale(ctx, seller, saleOf(line("ghost", 1, "10")))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	bad := line(radA, 1, "10")
	bad.WarehouseID = "ghost"
	_, err = f.create.CreateSale(ctx, seller, saleOf(bad))
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "warehouse", nf.Resource)

	_, _, salesRows, _ := f.store.Counts()
	assert.Zero(t, salesRows)
}

func TestCreateSale_RetriesDuplicateSaleNumber(t *testing.T) {
	numbers := []string{"SAL-DUP", "SAL-DUP", "SAL-DUP", "SAL-OK"}
	next := 0
	f := newFixture(t, sales.Options{NumberSource: func(time.Time) string {
		n := numbers[next]
		next++
		return n
	}})
	f.stock(t, radA, 10)
	ctx := context.Background()

	first, err := f.create.CreateSale(ctx, seller, saleOf(line(radA, 1, "10")))
	require.NoError(t, err)
	assert.Equal(t, "SAL-DUP", first.SaleNumber)

	second, err := f.create.CreateSale(ctx, seller, saleOf(line(radA, 1, "10")))
	require.NoError(t, err)
	assert.Equal(t, "SAL-OK", second.SaleNumber)
	assert.Equal(t, 4, next)

	q, _ := f.store.Quantity(radA, whAKL)
	assert.Equal(t, 8, q, "los intentos fallidos no descuentan stock")
}

func TestCreateSale_GivesUpAfterThreeConflicts(t *testing.T) {
	f := newFixture(t, sales.Options{NumberSource: func(time.Time) string { return "SAL-FIXED" }})
	f.stock(t, radA, 10)
	ctx := context.Background()

	_, err := f.create.CreateSale(ctx, seller, saleOf(line(radA, 1, "10")))
	require.NoError(t, err)

	_, err = f.create.CreateSale(ctx, seller, saleOf(line(radA, 1, "10")))
	require.ErrorIs(t, err, domain.ErrConflict)
	_, _, salesRows, _ := f.store.Counts()
	assert.Equal(t, 1, salesRows)
}

func TestNewSaleNumber_Format(t *testing.T) {
	at := time.Date(2026, 3, 9, 14, 5, 7, 0, time.UTC)
	n := sales.NewSaleNumber(at)
	assert.Regexp(t, regexp.MustCompile(`^SAL-20260309-140507-[0-9A-F]{6}$`), n)
	assert.NotEqual(t, n, sales.NewSaleNumber(at))
}

func TestUpdateSaleStatus_RestockIsExplicit(t *testing.T) {
	f := newFixture(t, sales.Options{})
	f.stock(t, radA, 10)
	ctx := context.Background()

	noRestock, err := f.create.CreateSale(ctx, seller, saleOf(line(radA, 2, "10")))
	require.NoError(t, err)
	withRestock, err := f.create.CreateSale(ctx, seller, saleOf(line(radA, 3, "10")))
	require.NoError(t, err)

	resp, err := f.admin.UpdateSaleStatus(ctx, noRestock.ID, seller, dto.UpdateSaleStatusRequest{Status: entity.SaleStatusCancelled})
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCancelled, resp.Status)
	q, _ := f.store.Quantity(radA, whAKL)
	assert.Equal(t, 5, q, "sin restock el stock no cambia")

	_, err = f.admin.UpdateSaleStatus(ctx, withRestock.ID, seller, dto.UpdateSaleStatusRequest{Status: entity.SaleStatusRefunded, Restock: true})
	require.NoError(t, err)
	q, _ = f.store.Quantity(radA, whAKL)
	assert.Equal(t, 8, q)

	history := f.store.HistoryFor(radA, whAKL)
	last := history[len(history)-1]
	assert.Equal(t, entity.ChangeTypeSaleRefunded, last.ChangeType)
	assert.Equal(t, entity.MovementIncoming, last.MovementType)
	require.NotNil(t, last.SaleID)
	assert.Equal(t, withRestock.ID, *last.SaleID)
}

func TestUpdateSaleStatus_InvalidTransitions(t *testing.T) {
	f := newFixture(t, sales.Options{})
	f.stock(t, radA, 10)
	ctx := context.Background()

	s, err := f.create.CreateSale(ctx, seller, saleOf(line(radA, 1, "10")))
	require.NoError(t, err)
	_, err = f.admin.UpdateSaleStatus(ctx, s.ID, seller, dto.UpdateSaleStatusRequest{Status: entity.SaleStatusCancelled})
	require.NoError(t, err)

	_, err = f.admin.UpdateSaleStatus(ctx, s.ID, seller, dto.UpdateSaleStatusRequest{Status: entity.SaleStatusCompleted})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.admin.UpdateSaleStatus(ctx, s.ID, seller, dto.UpdateSaleStatusRequest{Status: "Lost"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.admin.UpdateSaleStatus(ctx, "ghost", seller, dto.UpdateSaleStatusRequest{Status: entity.SaleStatusCancelled})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteSale_KeepsHistoryWithoutLink(t *testing.T) {
	f := newFixture(t, sales.Options{})
	f.stock(t, radA, 10)
	ctx := context.Background()

	s, err := f.create.CreateSale(ctx, seller, saleOf(line(radA, 4, "10")))
	require.NoError(t, err)
	require.NoError(t, f.admin.DeleteSale(ctx, s.ID))

	_, history, salesRows, itemRows := f.store.Counts()
	assert.Equal(t, 2, history)
	assert.Zero(t, salesRows)
	assert.Zero(t, itemRows)
	for _, h := range f.store.HistoryFor(radA, whAKL) {
		assert.Nil(t, h.SaleID)
	}
	q, _ := f.store.Quantity(radA, whAKL)
	assert.Equal(t, 6, q)

	assert.ErrorIs(t, f.admin.DeleteSale(ctx, s.ID), domain.ErrNotFound)
}

func TestListSales_FiltersByStatus(t *testing.T) {
	f := newFixture(t, sales.Options{})
	f.stock(t, radA, 10)
	ctx := context.Background()

	a, err := f.create.CreateSale(ctx, seller, saleOf(line(radA, 1, "10")))
	require.NoError(t, err)
	_, err = f.create.CreateSale(ctx, seller, saleOf(line(radA, 1, "10")))
	require.NoError(t, err)
	_, err = f.admin.UpdateSaleStatus(ctx, a.ID, seller, dto.UpdateSaleStatusRequest{Status: entity.SaleStatusCancelled})
	require.NoError(t, err)

	all, err := f.admin.ListSales(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
	assert.Equal(t, 2, all.Page.Total)

	cancelled, err := f.admin.ListSales(ctx, entity.SaleStatusCancelled, 10, 0)
	require.NoError(t, err)
	require.Len(t, cancelled.Items, 1)
	assert.Equal(t, a.ID, cancelled.Items[0].ID)
	assert.Equal(t, "Aroha Ngata", cancelled.Items[0].CustomerName)

	_, err = f.admin.ListSales(ctx, "Whatever", 10, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

type fakeReceipt struct {
	lines []sales.ReceiptLine
}

func (g *fakeReceipt) GenerateReceipt(_ context.Context, s *entity.Sale, c *entity.Customer, lines []sales.ReceiptLine) ([]byte, error) {
	g.lines = lines
	return []byte("%PDF " + s.SaleNumber + " " + c.FullName()), nil
}

func TestReceipt(t *testing.T) {
	f := newFixture(t, sales.Options{})
	f.stock(t, radA, 10)
	ctx := context.Background()
	gen := &fakeReceipt{}
	uc := sales.NewReceiptUseCase(f.store.Sales(), f.store.Customers(), f.store.Radiators(), f.store.Warehouses(), gen)

	s, err := f.create.CreateSale(ctx, seller, saleOf(line(radA, 2, "10")))
	require.NoError(t, err)

	pdf, filename, err := uc.Receipt(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "recibo_"+s.SaleNumber+".pdf", filename)
	assert.Contains(t, string(pdf), "Aroha Ngata")
	require.Len(t, gen.lines, 1)
	assert.Equal(t, "Koyo Corolla 1.8", gen.lines[0].RadiatorName)
	assert.Equal(t, "WH_AKL", gen.lines[0].WarehouseCode)

	_, _, err = uc.Receipt(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
