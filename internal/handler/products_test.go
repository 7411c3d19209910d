package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezelectronics/ezelectronics/internal/domain"
	"github.com/ezelectronics/ezelectronics/internal/service"
)

// fakeProductStore is a minimal in-memory ProductStore for handler tests.
type fakeProductStore struct {
	products map[string]domain.Product
}

func newFakeProductStore(products ...domain.Product) *fakeProductStore {
	f := &fakeProductStore{products: make(map[string]domain.Product)}
	for _, p := range products {
		f.products[p.Model] = p
	}
	return f
}

func (f *fakeProductStore) InsertProduct(ctx context.Context, p domain.Product) error {
	if _, exists := f.products[p.Model]; exists {
		return domain.ErrProductAlreadyExists
	}
	f.products[p.Model] = p
	return nil
}

func (f *fakeProductStore) GetProductByModel(ctx context.Context, model string) (domain.Product, error) {
	p, ok := f.products[model]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductStore) ListProducts(ctx context.Context, filter domain.ProductFilter, availableOnly bool) ([]domain.Product, error) {
	out := make([]domain.Product, 0)
	for _, p := range f.products {
		if availableOnly && p.Quantity == 0 {
			continue
		}
		if filter.Grouping == domain.GroupingCategory && string(p.Category) != filter.Category {
			continue
		}
		if filter.Grouping == domain.GroupingModel && p.Model != filter.Model {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductStore) IncreaseProductQuantity(ctx context.Context, model string, qty int) (int, error) {
	p, ok := f.products[model]
	if !ok {
		return 0, domain.ErrProductNotFound
	}
	p.Quantity += qty
	f.products[model] = p
	return p.Quantity, nil
}

func (f *fakeProductStore) DecreaseProductQuantity(ctx context.Context, model string, qty int) (int, error) {
	p, ok := f.products[model]
	if !ok || p.Quantity < qty {
		return 0, domain.ErrLowStock
	}
	p.Quantity -= qty
	f.products[model] = p
	return p.Quantity, nil
}

func (f *fakeProductStore) DeleteProduct(ctx context.Context, model string) error {
	if _, ok := f.products[model]; !ok {
		return domain.ErrProductNotFound
	}
	delete(f.products, model)
	return nil
}

func (f *fakeProductStore) DeleteAllProducts(ctx context.Context) error {
	f.products = make(map[string]domain.Product)
	return nil
}

func productRouter(store *fakeProductStore) *mux.Router {
	r := mux.NewRouter()
	NewProductHandler(service.NewProductService(store, nil)).RegisterRoutes(r)
	return r
}

func TestProductRoutes_Register(t *testing.T) {
	store := newFakeProductStore()
	router := productRouter(store)

	body := `{"model":"iPhone 13","category":"Smartphone","quantity":5,"sellingPrice":999,"arrivalDate":"2024-01-15"}`
	rec := do(router, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)), asMgr)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Registering the same model again conflicts.
	rec = do(router, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)), asMgr)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Customers cannot register products.
	rec = do(router, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)), asAlice)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestProductRoutes_Register_MissingFields(t *testing.T) {
	router := productRouter(newFakeProductStore())

	rec := do(router, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"model":"x"}`)), asMgr)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestProductRoutes_ChangeQuantityAndSell(t *testing.T) {
	store := newFakeProductStore(domain.Product{
		Model: "iPhone 13", Category: domain.CategorySmartphone, Quantity: 5, SellingPrice: 999, ArrivalDate: "2024-01-15",
	})
	router := productRouter(store)

	rec := do(router, httptest.NewRequest(http.MethodPatch, "/products/iPhone%2013",
		strings.NewReader(`{"quantity": 3}`)), asMgr)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]int
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 8, resp["quantity"])

	rec = do(router, httptest.NewRequest(http.MethodPatch, "/products/iPhone%2013/sell",
		strings.NewReader(`{"quantity": 2}`)), asMgr)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 6, resp["quantity"])
}

func TestProductRoutes_List_GroupingValidation(t *testing.T) {
	router := productRouter(newFakeProductStore())

	// Category filter without a grouping is a parameter error.
	rec := do(router, httptest.NewRequest(http.MethodGet, "/products?category=Smartphone", nil), asMgr)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(router, httptest.NewRequest(http.MethodGet, "/products?grouping=model", nil), asMgr)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestProductRoutes_ListAvailable_AnyAuthenticatedRole(t *testing.T) {
	store := newFakeProductStore(
		domain.Product{Model: "iPhone 13", Category: domain.CategorySmartphone, Quantity: 5, SellingPrice: 999},
		domain.Product{Model: "Galaxy S23", Category: domain.CategorySmartphone, Quantity: 0, SellingPrice: 899},
	)
	router := productRouter(store)

	rec := do(router, httptest.NewRequest(http.MethodGet, "/products/available", nil), asAlice)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []domain.Product
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&products))
	require.Len(t, products, 1)
	assert.Equal(t, "iPhone 13", products[0].Model)
}

func TestProductRoutes_Delete(t *testing.T) {
	store := newFakeProductStore(domain.Product{Model: "iPhone 13", Category: domain.CategorySmartphone, Quantity: 5})
	router := productRouter(store)

	rec := do(router, httptest.NewRequest(http.MethodDelete, "/products/iPhone%2013", nil), asMgr)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, httptest.NewRequest(http.MethodDelete, "/products/iPhone%2013", nil), asMgr)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
