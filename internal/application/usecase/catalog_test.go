package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/radiator-inventory/internal/application/dto"
	"github.com/jhoicas/radiator-inventory/internal/application/usecase"
	"github.com/jhoicas/radiator-inventory/internal/domain"
	"github.com/jhoicas/radiator-inventory/internal/infrastructure/memory"
)

func TestWarehouseUseCase_CreateNormalizesAndValidatesCode(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewWarehouseUseCase(store.Warehouses())
	ctx := context.Background()

	wh, err := uc.Create(ctx, dto.CreateWarehouseRequest{Code: " wh_akl ", Name: "Auckland"})
	require.NoError(t, err)
	assert.Equal(t, "WH_AKL", wh.Code)

	resolved, err := uc.Resolve(ctx, "WH_AKL")
	require.NoError(t, err)
	assert.Equal(t, wh.ID, resolved.ID)

	_, err = uc.Create(ctx, dto.CreateWarehouseRequest{Code: "WH_AKL", Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Create(ctx, dto.CreateWarehouseRequest{Code: "W", Name: "Corta"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "code", verr.Field)

	_, err = uc.Resolve(ctx, "WH_NOPE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWarehouseUseCase_DeleteBlockedByStock(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewWarehouseUseCase(store.Warehouses())
	ctx := context.Background()

	used, err := uc.Create(ctx, dto.CreateWarehouseRequest{Code: "WH_AKL", Name: "Auckland"})
	require.NoError(t, err)
	empty, err := uc.Create(ctx, dto.CreateWarehouseRequest{Code: "WH_WLG", Name: "Wellington"})
	require.NoError(t, err)
	_, err = store.StockLevels().GetForUpdate(ctx, "rad-1", used.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, used.ID), domain.ErrConflict)
	assert.NoError(t, uc.Delete(ctx, empty.ID))

	list, err := uc.List(ctx, 20, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "WH_AKL", list.Items[0].Code)
}

func TestRadiatorUseCase_PriceOverride(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewRadiatorUseCase(store.Radiators(), store.StockLevels())
	ctx := context.Background()

	r, err := uc.Create(ctx, dto.CreateRadiatorRequest{
		Brand: "Koyo", Code: "KOY-1001", Name: "Corolla", Year: 2012,
		RetailPrice: decimal.NewFromInt(320), TradePrice: decimal.NewFromInt(250),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, r.TotalStock)
	assert.Equal(t, "Out of Stock", r.StockStatus)

	price := decimal.NewFromInt(299)
	updated, err := uc.Update(ctx, r.ID, dto.UpdateRadiatorRequest{OverriddenPrice: &price})
	require.NoError(t, err)
	assert.True(t, updated.IsPriceOverridden)
	require.NotNil(t, updated.OverriddenPrice)
	assert.True(t, updated.OverriddenPrice.Equal(price))

	cleared, err := uc.Update(ctx, r.ID, dto.UpdateRadiatorRequest{ClearOverride: true})
	require.NoError(t, err)
	assert.False(t, cleared.IsPriceOverridden)
	assert.Nil(t, cleared.OverriddenPrice)

	_, err = uc.Create(ctx, dto.CreateRadiatorRequest{Brand: "Koyo", Code: "KOY-1001", Name: "Dup"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Create(ctx, dto.CreateRadiatorRequest{Brand: "Koyo", Code: "KOY-2", Name: "Neg", RetailPrice: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	found, err := uc.List(ctx, "corolla", 20, 0)
	require.NoError(t, err)
	assert.Len(t, found.Items, 1)
}

func TestCustomerUseCase(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewCustomerUseCase(store.Customers())
	ctx := context.Background()

	c, err := uc.Create(ctx, dto.CreateCustomerRequest{FirstName: "Mere", LastName: "Tane", Email: "mere@example.com"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateCustomerRequest{FirstName: "Otra", Email: "MERE@example.com"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Create(ctx, dto.CreateCustomerRequest{LastName: "Sin nombre"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	phone := "021 555 0101"
	updated, err := uc.Update(ctx, c.ID, dto.UpdateCustomerRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)

	list, err := uc.List(ctx, "tane", 20, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.Delete(ctx, c.ID))
	_, err = uc.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
