package sale_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
	"github.com/jhoicas/radiator-inventory/internal/domain/sale"
)

func TestComputeTotals_SumaLineasEImpuesto(t *testing.T) {
	items := []*entity.SaleItem{
		{Quantity: 3, UnitPrice: decimal.RequireFromString("120.50")},
		{Quantity: 1, UnitPrice: decimal.RequireFromString("99.99")},
	}
	tot := sale.ComputeTotals(items, sale.DefaultTaxRate)

	assert.True(t, items[0].TotalPrice.Equal(decimal.RequireFromString("361.50")))
	assert.True(t, items[1].TotalPrice.Equal(decimal.RequireFromString("99.99")))
	assert.True(t, tot.SubTotal.Equal(decimal.RequireFromString("461.49")), tot.SubTotal.String())
	assert.True(t, tot.TaxAmount.Equal(decimal.RequireFromString("69.22")), tot.TaxAmount.String())
	assert.True(t, tot.TotalAmount.Equal(tot.SubTotal.Add(tot.TaxAmount)))
}

func TestValidateTotals(t *testing.T) {
	items := []*entity.SaleItem{{Quantity: 2, UnitPrice: decimal.NewFromInt(50)}}
	tot := sale.ComputeTotals(items, sale.DefaultTaxRate)
	s := &entity.Sale{Items: items, SubTotal: tot.SubTotal, TaxAmount: tot.TaxAmount, TotalAmount: tot.TotalAmount}
	require.NoError(t, sale.ValidateTotals(s))

	s.TotalAmount = s.TotalAmount.Add(decimal.NewFromInt(1))
	err := sale.ValidateTotals(s)
	require.Error(t, err)
	assert.ErrorIs(t, err, sale.ErrInconsistentTotals)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, sale.CanTransition(entity.SaleStatusPending, entity.SaleStatusCompleted))
	assert.True(t, sale.CanTransition(entity.SaleStatusCompleted, entity.SaleStatusRefunded))
	assert.False(t, sale.CanTransition(entity.SaleStatusCancelled, entity.SaleStatusCompleted))
	assert.False(t, sale.CanTransition(entity.SaleStatusRefunded, entity.SaleStatusCancelled))
	assert.False(t, sale.CanTransition(entity.SaleStatusCompleted, entity.SaleStatusPending))
}

func TestComputeTotals_UnitPriceMatchesStoredPrecision(t *testing.T) {
	items := []*entity.SaleItem{{Quantity: 3, UnitPrice: decimal.RequireFromString("0.005")}}
	sale.ComputeTotals(items, decimal.Zero)

	stored := items[0].UnitPrice.Mul(decimal.NewFromInt(3))
	assert.True(t, stored.Equal(items[0].TotalPrice), "%s x 3 != %s", items[0].UnitPrice, items[0].TotalPrice)
}

func TestParseTaxRate(t *testing.T) {
	r, err := sale.ParseTaxRate("0")
	require.NoError(t, err)
	assert.True(t, r.IsZero())

	r, err = sale.ParseTaxRate("0.15")
	require.NoError(t, err)
	assert.True(t, r.Equal(sale.DefaultTaxRate))

	for _, raw := range []string{"-0.1", "1.5", "quince"} {
		_, err := sale.ParseTaxRate(raw)
		assert.Error(t, err, raw)
	}
}

func TestIsCents(t *testing.T) {
	assert.True(t, sale.IsCents(decimal.RequireFromString("19.90")))
	assert.True(t, sale.IsCents(decimal.RequireFromString("1.500")))
	assert.False(t, sale.IsCents(decimal.RequireFromString("0.005")))
}
