package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezelectronics/ezelectronics/internal/domain"
)

func TestStore_InsertProduct_Duplicate(t *testing.T) {
	store := newTestStore(t)
	seedProduct(t, store, "iPhone 13", domain.CategorySmartphone, 5, 999)

	err := store.InsertProduct(context.Background(), domain.Product{
		Model:        "iPhone 13",
		Category:     domain.CategorySmartphone,
		Quantity:     1,
		SellingPrice: 899,
	})
	assert.ErrorIs(t, err, domain.ErrProductAlreadyExists)
}

func TestStore_GetProductByModel(t *testing.T) {
	store := newTestStore(t)
	seedProduct(t, store, "iPhone 13", domain.CategorySmartphone, 5, 999)

	p, err := store.GetProductByModel(context.Background(), "iPhone 13")
	require.NoError(t, err)
	assert.Equal(t, domain.CategorySmartphone, p.Category)
	assert.Equal(t, 5, p.Quantity)
	assert.Equal(t, 999.0, p.SellingPrice)
	assert.Equal(t, "2024-01-15", p.ArrivalDate)

	_, err = store.GetProductByModel(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestStore_ListProducts_Filters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedProduct(t, store, "iPhone 13", domain.CategorySmartphone, 5, 999)
	seedProduct(t, store, "Galaxy S23", domain.CategorySmartphone, 0, 899)
	seedProduct(t, store, "ThinkPad X1", domain.CategoryLaptop, 2, 1500)

	all, err := store.ListProducts(ctx, domain.ProductFilter{}, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	phones, err := store.ListProducts(ctx, domain.ProductFilter{
		Grouping: domain.GroupingCategory, Category: "Smartphone",
	}, false)
	require.NoError(t, err)
	assert.Len(t, phones, 2)

	availablePhones, err := store.ListProducts(ctx, domain.ProductFilter{
		Grouping: domain.GroupingCategory, Category: "Smartphone",
	}, true)
	require.NoError(t, err)
	require.Len(t, availablePhones, 1)
	assert.Equal(t, "iPhone 13", availablePhones[0].Model)

	byModel, err := store.ListProducts(ctx, domain.ProductFilter{
		Grouping: domain.GroupingModel, Model: "ThinkPad X1",
	}, false)
	require.NoError(t, err)
	assert.Len(t, byModel, 1)

	soldOut, err := store.ListProducts(ctx, domain.ProductFilter{
		Grouping: domain.GroupingModel, Model: "Galaxy S23",
	}, true)
	require.NoError(t, err)
	assert.Empty(t, soldOut)
}

func TestStore_IncreaseProductQuantity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedProduct(t, store, "iPhone 13", domain.CategorySmartphone, 5, 999)

	qty, err := store.IncreaseProductQuantity(ctx, "iPhone 13", 3)
	require.NoError(t, err)
	assert.Equal(t, 8, qty)

	_, err = store.IncreaseProductQuantity(ctx, "nope", 3)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestStore_DecreaseProductQuantity_Guard(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedProduct(t, store, "iPhone 13", domain.CategorySmartphone, 2, 999)

	qty, err := store.DecreaseProductQuantity(ctx, "iPhone 13", 2)
	require.NoError(t, err)
	assert.Equal(t, 0, qty)

	// Stock is exhausted; the guarded update must refuse to go negative.
	_, err = store.DecreaseProductQuantity(ctx, "iPhone 13", 1)
	assert.ErrorIs(t, err, domain.ErrLowStock)

	p, err := store.GetProductByModel(ctx, "iPhone 13")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity)
}

func TestStore_DeleteProduct(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedProduct(t, store, "iPhone 13", domain.CategorySmartphone, 5, 999)

	require.NoError(t, store.DeleteProduct(ctx, "iPhone 13"))
	assert.ErrorIs(t, store.DeleteProduct(ctx, "iPhone 13"), domain.ErrProductNotFound)
}
