package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/radiator-inventory/internal/application/sales"
	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
)

func TestNewReceiptGenerator_RejectsUnknownCurrency(t *testing.T) {
	_, err := NewReceiptGenerator("Radiadores", "XYZ1", "en-NZ")
	assert.Error(t, err)
}

func TestReceiptGenerator_Money(t *testing.T) {
	g, err := NewReceiptGenerator("Radiadores", "NZD", "en-NZ")
	require.NoError(t, err)

	assert.Contains(t, g.money(decimal.RequireFromString("220.99")), "220.99")
	assert.Contains(t, g.money(decimal.RequireFromString("33.149")), "33.15")
}

func TestReceiptGenerator_GenerateReceipt(t *testing.T) {
	g, err := NewReceiptGenerator("Radiadores del Sur", "NZD", "en-NZ")
	require.NoError(t, err)

	now := time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)
	sale := &entity.Sale{
		ID:            "s1",
		SaleNumber:    "SAL-20240510-143000-ABC123",
		PaymentMethod: entity.PaymentCard,
		Status:        entity.SaleStatusCompleted,
		SubTotal:      decimal.RequireFromString("220.99"),
		TaxAmount:     decimal.RequireFromString("33.15"),
		TotalAmount:   decimal.RequireFromString("254.14"),
		Notes:         "Entrega en taller",
		SaleDate:      now,
	}
	lines := []sales.ReceiptLine{
		{
			SaleItem: entity.SaleItem{
				RadiatorID: "r1", WarehouseID: "w1", Quantity: 2,
				UnitPrice: decimal.RequireFromString("100.00"), TotalPrice: decimal.RequireFromString("200.00"),
			},
			RadiatorCode: "KOY-1001", RadiatorName: "Corolla 2012", WarehouseCode: "WH_AKL",
		},
		{
			SaleItem: entity.SaleItem{
				RadiatorID: "r2", WarehouseID: "w1", Quantity: 1,
				UnitPrice: decimal.RequireFromString("20.99"), TotalPrice: decimal.RequireFromString("20.99"),
			},
			RadiatorCode: "DEN-2002", RadiatorName: "Hilux 2015", WarehouseCode: "WH_AKL",
		},
	}
	customer := &entity.Customer{FirstName: "Mere", LastName: "Tane", Email: "mere@example.com"}

	data, err := g.GenerateReceipt(context.Background(), sale, customer, lines)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	// Cliente ausente no rompe el layout.
	data, err = g.GenerateReceipt(context.Background(), sale, nil, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
