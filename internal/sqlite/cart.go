package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ezelectronics/ezelectronics/internal/domain"
)

// GetActiveCartID resolves the id of the customer's single unpaid cart.
func (s *Store) GetActiveCartID(ctx context.Context, customer string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM carts WHERE customer = ? AND paid = 0`, customer).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrCartNotFound
		}
		return 0, domain.Internal(err, "sqlite.cart.active", "failed to resolve active cart")
	}
	return id, nil
}

// CreateCart inserts a fresh unpaid cart header for the customer.
func (s *Store) CreateCart(ctx context.Context, customer string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO carts (customer, paid, payment_date) VALUES (?, 0, NULL)`, customer)
	if err != nil {
		return 0, domain.Internal(err, "sqlite.cart.create", "failed to create cart")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.Internal(err, "sqlite.cart.create", "failed to read cart id")
	}
	return id, nil
}

// GetCartLineItems returns the cart's line items joined with the product's
// current category and price. Carts keep their line items even when the
// referenced product has been deleted from the catalog; such rows come back
// with an empty category and zero price and are caught by checkout's
// per-item validation.
func (s *Store) GetCartLineItems(ctx context.Context, cartID int64) ([]domain.CartLineItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT li.product_model, li.quantity, p.category, p.selling_price
		 FROM cart_line_items li
		 LEFT JOIN products p ON p.model = li.product_model
		 WHERE li.cart_id = ?
		 ORDER BY li.rowid`, cartID)
	if err != nil {
		return nil, domain.Internal(err, "sqlite.cart.items", "failed to load cart items")
	}
	defer rows.Close()

	items := make([]domain.CartLineItem, 0)
	for rows.Next() {
		var (
			item     domain.CartLineItem
			category sql.NullString
			price    sql.NullFloat64
		)
		if err := rows.Scan(&item.Model, &item.Quantity, &category, &price); err != nil {
			return nil, domain.Internal(err, "sqlite.cart.items", "failed to scan cart item")
		}
		item.Category = domain.Category(category.String)
		item.Price = price.Float64
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "sqlite.cart.items", "failed to read cart items")
	}
	return items, nil
}

// UpsertLineItem adds one unit of model to the cart, creating the line item
// with quantity 1 on first add and incrementing it on repeat adds.
func (s *Store) UpsertLineItem(ctx context.Context, cartID int64, model string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cart_line_items (cart_id, product_model, quantity)
		 VALUES (?, ?, 1)
		 ON CONFLICT (cart_id, product_model)
		 DO UPDATE SET quantity = quantity + 1`, cartID, model)
	if err != nil {
		return domain.Internal(err, "sqlite.cart.upsert_item", "failed to add product to cart")
	}
	return nil
}

// DeleteLineItem removes the line item for model from the cart.
func (s *Store) DeleteLineItem(ctx context.Context, cartID int64, model string) error {
	n, err := s.execAffecting(ctx,
		`DELETE FROM cart_line_items WHERE cart_id = ? AND product_model = ?`, cartID, model)
	if err != nil {
		return domain.Internal(err, "sqlite.cart.delete_item", "failed to remove product from cart")
	}
	if n == 0 {
		return domain.ErrProductNotInCart
	}
	return nil
}

// ClearCartLineItems deletes every line item of the cart. The cart header
// stays in place, now empty.
func (s *Store) ClearCartLineItems(ctx context.Context, cartID int64) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM cart_line_items WHERE cart_id = ?`, cartID); err != nil {
		return domain.Internal(err, "sqlite.cart.clear", "failed to clear cart")
	}
	return nil
}

// ListPaidCarts returns the customer's paid cart headers in insertion order.
func (s *Store) ListPaidCarts(ctx context.Context, customer string) ([]domain.CartRecord, error) {
	return s.listCarts(ctx,
		`SELECT id, customer, paid, payment_date FROM carts WHERE customer = ? AND paid = 1 ORDER BY id`,
		customer)
}

// ListAllCarts returns every cart header, paid or not, in insertion order.
func (s *Store) ListAllCarts(ctx context.Context) ([]domain.CartRecord, error) {
	return s.listCarts(ctx,
		`SELECT id, customer, paid, payment_date FROM carts ORDER BY id`)
}

func (s *Store) listCarts(ctx context.Context, query string, args ...any) ([]domain.CartRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.Internal(err, "sqlite.cart.list", "failed to list carts")
	}
	defer rows.Close()

	carts := make([]domain.CartRecord, 0)
	for rows.Next() {
		var (
			rec         domain.CartRecord
			paymentDate sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.Customer, &rec.Paid, &paymentDate); err != nil {
			return nil, domain.Internal(err, "sqlite.cart.list", "failed to scan cart")
		}
		rec.PaymentDate = paymentDate.String
		carts = append(carts, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "sqlite.cart.list", "failed to read carts")
	}
	return carts, nil
}

// CompleteCheckout decrements catalog stock for every line item and marks the
// cart paid, all inside one transaction. Each decrement carries a stock guard
// so a sale that raced past the service-level validation aborts the whole
// transaction instead of overselling; on any failure the cart and the catalog
// are left exactly as they were.
func (s *Store) CompleteCheckout(ctx context.Context, cartID int64, paymentDate string, items []domain.CartLineItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Internal(err, "sqlite.cart.checkout", "failed to begin checkout")
	}
	defer tx.Rollback()

	for _, item := range items {
		res, err := tx.ExecContext(ctx,
			`UPDATE products SET quantity = quantity - ? WHERE model = ? AND quantity >= ?`,
			item.Quantity, item.Model, item.Quantity)
		if err != nil {
			return domain.Internal(err, "sqlite.cart.checkout", "failed to decrement stock")
		}
		n, err := res.RowsAffected()
		if err != nil {
			return domain.Internal(err, "sqlite.cart.checkout", "failed to decrement stock")
		}
		if n == 0 {
			return domain.WrapError(domain.ErrLowStock, domain.ECONFLICT, "sqlite.cart.checkout",
				fmt.Sprintf("stock changed for %s during checkout", item.Model))
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE carts SET paid = 1, payment_date = ? WHERE id = ?`, paymentDate, cartID); err != nil {
		return domain.Internal(err, "sqlite.cart.checkout", "failed to mark cart paid")
	}

	if err := tx.Commit(); err != nil {
		return domain.Internal(err, "sqlite.cart.checkout", "failed to commit checkout")
	}
	return nil
}

// DeleteAllCarts purges every cart and line item unconditionally.
func (s *Store) DeleteAllCarts(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Internal(err, "sqlite.cart.delete_all", "failed to begin purge")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_line_items`); err != nil {
		return domain.Internal(err, "sqlite.cart.delete_all", "failed to delete cart items")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM carts`); err != nil {
		return domain.Internal(err, "sqlite.cart.delete_all", "failed to delete carts")
	}
	if err := tx.Commit(); err != nil {
		return domain.Internal(err, "sqlite.cart.delete_all", "failed to commit purge")
	}
	return nil
}
