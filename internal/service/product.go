package service

import (
	"context"
	"time"

	"github.com/ezelectronics/ezelectronics/internal/domain"
	"github.com/ezelectronics/ezelectronics/internal/events"
)

// ProductStore is the persistence surface of the catalog and inventory
// adjustment operations. *sqlite.Store satisfies it.
type ProductStore interface {
	InsertProduct(ctx context.Context, p domain.Product) error
	GetProductByModel(ctx context.Context, model string) (domain.Product, error)
	ListProducts(ctx context.Context, filter domain.ProductFilter, availableOnly bool) ([]domain.Product, error)
	IncreaseProductQuantity(ctx context.Context, model string, qty int) (int, error)
	DecreaseProductQuantity(ctx context.Context, model string, qty int) (int, error)
	DeleteProduct(ctx context.Context, model string) error
	DeleteAllProducts(ctx context.Context) error
}

// ProductService owns the product catalog and the inventory adjustment rules:
// stock deltas, non-negative stock, and the date constraints on arrivals,
// restocks and sales.
type ProductService struct {
	store  ProductStore
	events events.Publisher
}

// NewProductService creates a new ProductService instance.
func NewProductService(store ProductStore, publisher events.Publisher) *ProductService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ProductService{store: store, events: publisher}
}

// RegisterProductParams contains parameters for registering a product concept.
type RegisterProductParams struct {
	Model        string
	Category     domain.Category
	Quantity     int
	Details      string
	SellingPrice float64
	ArrivalDate  string
}

// RegisterProduct adds a new product concept to the catalog. A missing
// arrival date defaults to today; a future one is rejected.
func (s *ProductService) RegisterProduct(ctx context.Context, params RegisterProductParams) error {
	if !params.Category.Valid() {
		return domain.Unprocessable("product.register", "invalid category")
	}
	if params.Quantity < 1 {
		return domain.Unprocessable("product.register", "quantity must be at least 1")
	}
	if params.SellingPrice <= 0 {
		return domain.Unprocessable("product.register", "selling price must be positive")
	}

	arrival := params.ArrivalDate
	if arrival == "" {
		arrival = domain.Today()
	} else if err := validateNotFuture(arrival); err != nil {
		return err
	}

	return s.store.InsertProduct(ctx, domain.Product{
		Model:        params.Model,
		Category:     params.Category,
		Quantity:     params.Quantity,
		Details:      params.Details,
		SellingPrice: params.SellingPrice,
		ArrivalDate:  arrival,
	})
}

// ChangeQuantity applies a positive stock delta to a product (new units
// arriving). The change date must not be in the future and not precede the
// product's arrival date. Returns the new quantity.
func (s *ProductService) ChangeQuantity(ctx context.Context, model string, delta int, changeDate string) (int, error) {
	if delta < 1 {
		return 0, domain.Unprocessable("product.change_quantity", "quantity must be at least 1")
	}
	if changeDate != "" {
		if err := validateNotFuture(changeDate); err != nil {
			return 0, err
		}
	}

	product, err := s.store.GetProductByModel(ctx, model)
	if err != nil {
		return 0, err
	}
	if changeDate != "" && product.ArrivalDate != "" && changeDate < product.ArrivalDate {
		return 0, domain.ErrInvalidDate
	}

	newQuantity, err := s.store.IncreaseProductQuantity(ctx, model, delta)
	if err != nil {
		return 0, err
	}

	s.events.InventoryAdjusted(model, delta, newQuantity)
	return newQuantity, nil
}

// Sell applies a negative stock delta to a product (units sold outside the
// cart flow). Stock checks run before the arrival-date check, matching the
// selling path's observed ordering: empty stock first, then insufficient
// stock, then the date constraint. Returns the new quantity.
func (s *ProductService) Sell(ctx context.Context, model string, quantity int, sellingDate string) (int, error) {
	if quantity < 1 {
		return 0, domain.Unprocessable("product.sell", "quantity must be at least 1")
	}
	if sellingDate != "" {
		if err := validateNotFuture(sellingDate); err != nil {
			return 0, err
		}
	}

	product, err := s.store.GetProductByModel(ctx, model)
	if err != nil {
		return 0, err
	}
	if product.Quantity == 0 {
		return 0, domain.ErrEmptyStock
	}
	if product.Quantity < quantity {
		return 0, domain.ErrLowStock
	}
	if sellingDate != "" && product.ArrivalDate != "" && sellingDate < product.ArrivalDate {
		return 0, domain.ErrInvalidDate
	}

	newQuantity, err := s.store.DecreaseProductQuantity(ctx, model, quantity)
	if err != nil {
		return 0, err
	}

	s.events.InventoryAdjusted(model, -quantity, newQuantity)
	return newQuantity, nil
}

// GetProducts returns catalog records matching the filter. With availableOnly
// set, out-of-stock records are excluded; filtering an existing but
// out-of-stock model then yields an empty list rather than an error.
func (s *ProductService) GetProducts(ctx context.Context, filter domain.ProductFilter, availableOnly bool) ([]domain.Product, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	products, err := s.store.ListProducts(ctx, filter, availableOnly)
	if err != nil {
		return nil, err
	}

	if len(products) == 0 && filter.Grouping == domain.GroupingModel {
		if !availableOnly {
			return nil, domain.ErrProductNotFound
		}
		// The model filter matched nothing: distinguish "unknown model"
		// from "known model with zero stock".
		if _, err := s.store.GetProductByModel(ctx, filter.Model); err != nil {
			return nil, err
		}
	}
	return products, nil
}

// GetProductByModel returns one catalog record.
func (s *ProductService) GetProductByModel(ctx context.Context, model string) (domain.Product, error) {
	return s.store.GetProductByModel(ctx, model)
}

// DeleteProduct removes one product from the catalog. Carts holding the model
// keep their line items; checkout surfaces the dangling reference.
func (s *ProductService) DeleteProduct(ctx context.Context, model string) error {
	if _, err := s.store.GetProductByModel(ctx, model); err != nil {
		return err
	}
	return s.store.DeleteProduct(ctx, model)
}

// DeleteAllProducts purges the catalog.
func (s *ProductService) DeleteAllProducts(ctx context.Context) error {
	return s.store.DeleteAllProducts(ctx)
}

// validateNotFuture parses a YYYY-MM-DD date and rejects dates after today.
func validateNotFuture(date string) error {
	parsed, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return domain.ErrInvalidDate
	}
	if parsed.After(time.Now()) {
		return domain.ErrInvalidDate
	}
	return nil
}

// validateFilter enforces the grouping parameter rules: category only (and
// always) with category grouping, model only (and always) with model
// grouping, neither without a grouping.
func validateFilter(filter domain.ProductFilter) error {
	switch filter.Grouping {
	case domain.GroupingNone:
		if filter.Category != "" || filter.Model != "" {
			return domain.Unprocessable("product.list", "category and model require a grouping")
		}
	case domain.GroupingCategory:
		if !domain.Category(filter.Category).Valid() || filter.Model != "" {
			return domain.Unprocessable("product.list", "invalid category grouping")
		}
	case domain.GroupingModel:
		if filter.Model == "" || filter.Category != "" {
			return domain.Unprocessable("product.list", "invalid model grouping")
		}
	default:
		return domain.Unprocessable("product.list", "invalid grouping")
	}
	return nil
}
