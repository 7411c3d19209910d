package service

import (
	"context"
	"errors"

	"github.com/ezelectronics/ezelectronics/internal/domain"
	"github.com/ezelectronics/ezelectronics/internal/events"
)

// CartStore is the persistence surface the cart lifecycle manager needs.
// *sqlite.Store satisfies it.
type CartStore interface {
	GetActiveCartID(ctx context.Context, customer string) (int64, error)
	CreateCart(ctx context.Context, customer string) (int64, error)
	GetCartLineItems(ctx context.Context, cartID int64) ([]domain.CartLineItem, error)
	UpsertLineItem(ctx context.Context, cartID int64, model string) error
	DeleteLineItem(ctx context.Context, cartID int64, model string) error
	ClearCartLineItems(ctx context.Context, cartID int64) error
	CompleteCheckout(ctx context.Context, cartID int64, paymentDate string, items []domain.CartLineItem) error
	ListPaidCarts(ctx context.Context, customer string) ([]domain.CartRecord, error)
	ListAllCarts(ctx context.Context) ([]domain.CartRecord, error)
	DeleteAllCarts(ctx context.Context) error
}

// CatalogReader is the slice of the catalog the cart service consumes:
// product lookups for validation and the live price/category projection.
type CatalogReader interface {
	GetProductByModel(ctx context.Context, model string) (domain.Product, error)
}

// CartService mediates all cart state transitions for a customer. It is the
// single place where cross-entity consistency between carts and the catalog
// is enforced. Stock is only an optimistic check at add time; reservation
// happens at checkout.
type CartService struct {
	store   CartStore
	catalog CatalogReader
	events  events.Publisher
}

// NewCartService creates a new CartService instance.
func NewCartService(store CartStore, catalog CatalogReader, publisher events.Publisher) *CartService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &CartService{
		store:   store,
		catalog: catalog,
		events:  publisher,
	}
}

// GetActiveCart returns the customer's current unpaid cart, creating an empty
// one if none exists.
func (s *CartService) GetActiveCart(ctx context.Context, customer string) (*domain.Cart, error) {
	cartID, err := s.store.GetActiveCartID(ctx, customer)
	if err != nil {
		if !errors.Is(err, domain.ErrCartNotFound) {
			return nil, err
		}
		if _, err := s.store.CreateCart(ctx, customer); err != nil {
			return nil, err
		}
		return &domain.Cart{Customer: customer, Products: []domain.CartLineItem{}}, nil
	}

	return s.projectCart(ctx, cartID, domain.CartRecord{Customer: customer})
}

// AddProductToCart adds one unit of model to the customer's active cart,
// creating the cart lazily. Repeat adds of the same model increment the
// existing line item instead of creating a second one. The catalog is not
// touched: stock is only validated, not reserved.
func (s *CartService) AddProductToCart(ctx context.Context, customer, model string) error {
	product, err := s.catalog.GetProductByModel(ctx, model)
	if err != nil {
		return err
	}
	if product.Quantity == 0 {
		return domain.ErrEmptyStock
	}

	cartID, err := s.store.GetActiveCartID(ctx, customer)
	if err != nil {
		if !errors.Is(err, domain.ErrCartNotFound) {
			return err
		}
		cartID, err = s.store.CreateCart(ctx, customer)
		if err != nil {
			return err
		}
	}

	return s.store.UpsertLineItem(ctx, cartID, model)
}

// RemoveProductFromCart deletes the line item for model from the active cart.
// The whole line item goes, regardless of its quantity.
func (s *CartService) RemoveProductFromCart(ctx context.Context, customer, model string) error {
	cartID, err := s.store.GetActiveCartID(ctx, customer)
	if err != nil {
		return err
	}

	items, err := s.store.GetCartLineItems(ctx, cartID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return domain.ErrCartNotFound
	}

	if _, err := s.catalog.GetProductByModel(ctx, model); err != nil {
		return err
	}

	return s.store.DeleteLineItem(ctx, cartID, model)
}

// Checkout transitions the active cart from unpaid to paid. Every line item
// is re-validated against live stock first; the decrements and the paid flag
// are then applied in a single transaction, so a failing item leaves both the
// cart and the catalog untouched. An active cart with no line items is
// treated identically to a missing cart.
func (s *CartService) Checkout(ctx context.Context, customer string) error {
	cartID, err := s.store.GetActiveCartID(ctx, customer)
	if err != nil {
		return err
	}

	items, err := s.store.GetCartLineItems(ctx, cartID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return domain.ErrCartNotFound
	}

	for _, item := range items {
		product, err := s.catalog.GetProductByModel(ctx, item.Model)
		if err != nil {
			return err
		}
		if product.Quantity == 0 {
			return domain.ErrEmptyStock
		}
		if product.Quantity < item.Quantity {
			return domain.ErrLowStock
		}
	}

	paymentDate := domain.Today()
	if err := s.store.CompleteCheckout(ctx, cartID, paymentDate, items); err != nil {
		return err
	}

	s.events.CartCheckedOut(domain.Cart{
		Customer:    customer,
		Paid:        true,
		PaymentDate: paymentDate,
		Total:       cartTotal(items),
		Products:    items,
	})
	return nil
}

// GetCartHistory returns all of the customer's paid carts with their line
// items, in insertion order. No history yields an empty slice.
func (s *CartService) GetCartHistory(ctx context.Context, customer string) ([]domain.Cart, error) {
	records, err := s.store.ListPaidCarts(ctx, customer)
	if err != nil {
		return nil, err
	}

	carts := make([]domain.Cart, 0, len(records))
	for _, rec := range records {
		cart, err := s.projectCart(ctx, rec.ID, rec)
		if err != nil {
			return nil, err
		}
		carts = append(carts, *cart)
	}
	return carts, nil
}

// ClearActiveCart deletes every line item of the active cart; the header
// stays behind, empty. Clearing an already-empty cart succeeds trivially.
// A customer without an active cart is a storage-level fault here, not a
// not-found condition.
func (s *CartService) ClearActiveCart(ctx context.Context, customer string) error {
	cartID, err := s.store.GetActiveCartID(ctx, customer)
	if err != nil {
		return domain.Internal(err, "cart.clear", "failed to resolve active cart")
	}
	return s.store.ClearCartLineItems(ctx, cartID)
}

// DeleteAllCarts purges every cart of every customer.
func (s *CartService) DeleteAllCarts(ctx context.Context) error {
	return s.store.DeleteAllCarts(ctx)
}

// GetAllCarts returns one view per cart that has at least one line item.
// Empty carts are silently dropped, not returned as empty entries.
func (s *CartService) GetAllCarts(ctx context.Context) ([]domain.Cart, error) {
	records, err := s.store.ListAllCarts(ctx)
	if err != nil {
		return nil, err
	}

	carts := make([]domain.Cart, 0, len(records))
	for _, rec := range records {
		cart, err := s.projectCart(ctx, rec.ID, rec)
		if err != nil {
			return nil, err
		}
		if len(cart.Products) == 0 {
			continue
		}
		carts = append(carts, *cart)
	}
	return carts, nil
}

// projectCart assembles the response view of a cart: line items joined with
// the product's current category and price, and the total computed from
// them. Prices are always live, so historical carts display current prices.
func (s *CartService) projectCart(ctx context.Context, cartID int64, rec domain.CartRecord) (*domain.Cart, error) {
	items, err := s.store.GetCartLineItems(ctx, cartID)
	if err != nil {
		return nil, err
	}

	return &domain.Cart{
		Customer:    rec.Customer,
		Paid:        rec.Paid,
		PaymentDate: rec.PaymentDate,
		Total:       cartTotal(items),
		Products:    items,
	}, nil
}

func cartTotal(items []domain.CartLineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
