package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ezelectronics/ezelectronics/internal/domain"
)

// scanProduct maps one products row to a domain entity.
func scanProduct(row interface{ Scan(...any) error }) (domain.Product, error) {
	var (
		p       domain.Product
		details sql.NullString
		arrival sql.NullString
	)
	err := row.Scan(&p.Model, &p.Category, &p.Quantity, &details, &p.SellingPrice, &arrival)
	if err != nil {
		return domain.Product{}, err
	}
	p.Details = details.String
	p.ArrivalDate = arrival.String
	return p, nil
}

// InsertProduct registers a new product concept.
func (s *Store) InsertProduct(ctx context.Context, p domain.Product) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO products (model, category, quantity, details, selling_price, arrival_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.Model, p.Category, p.Quantity, nullableString(p.Details), p.SellingPrice, nullableString(p.ArrivalDate))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProductAlreadyExists
		}
		return domain.Internal(err, "sqlite.product.insert", "failed to insert product")
	}
	return nil
}

// GetProductByModel returns the catalog record for model.
func (s *Store) GetProductByModel(ctx context.Context, model string) (domain.Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT model, category, quantity, details, selling_price, arrival_date
		 FROM products WHERE model = ?`, model)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, domain.Internal(err, "sqlite.product.get", "failed to get product")
	}
	return p, nil
}

// ListProducts returns catalog records matching the filter. With availableOnly
// set, records with zero stock are excluded.
func (s *Store) ListProducts(ctx context.Context, filter domain.ProductFilter, availableOnly bool) ([]domain.Product, error) {
	query := `SELECT model, category, quantity, details, selling_price, arrival_date FROM products`
	var (
		conds []string
		args  []any
	)
	if availableOnly {
		conds = append(conds, "quantity > 0")
	}
	switch filter.Grouping {
	case domain.GroupingCategory:
		conds = append(conds, "category = ?")
		args = append(args, filter.Category)
	case domain.GroupingModel:
		conds = append(conds, "model = ?")
		args = append(args, filter.Model)
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.Internal(err, "sqlite.product.list", "failed to list products")
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.Internal(err, "sqlite.product.list", "failed to scan product")
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "sqlite.product.list", "failed to read products")
	}
	return products, nil
}

// IncreaseProductQuantity adds qty units to the product's stock and returns
// the new quantity.
func (s *Store) IncreaseProductQuantity(ctx context.Context, model string, qty int) (int, error) {
	n, err := s.execAffecting(ctx,
		`UPDATE products SET quantity = quantity + ? WHERE model = ?`, qty, model)
	if err != nil {
		return 0, domain.Internal(err, "sqlite.product.increase", "failed to increase stock")
	}
	if n == 0 {
		return 0, domain.ErrProductNotFound
	}
	return s.productQuantity(ctx, model)
}

// DecreaseProductQuantity removes qty units from the product's stock and
// returns the new quantity. The update is guarded so stock never goes
// negative: a concurrent sale that consumed the stock first surfaces as
// ErrLowStock instead of a lost update.
func (s *Store) DecreaseProductQuantity(ctx context.Context, model string, qty int) (int, error) {
	n, err := s.execAffecting(ctx,
		`UPDATE products SET quantity = quantity - ? WHERE model = ? AND quantity >= ?`,
		qty, model, qty)
	if err != nil {
		return 0, domain.Internal(err, "sqlite.product.decrease", "failed to decrease stock")
	}
	if n == 0 {
		return 0, domain.ErrLowStock
	}
	return s.productQuantity(ctx, model)
}

func (s *Store) productQuantity(ctx context.Context, model string) (int, error) {
	var qty int
	err := s.db.QueryRowContext(ctx, `SELECT quantity FROM products WHERE model = ?`, model).Scan(&qty)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrProductNotFound
		}
		return 0, domain.Internal(err, "sqlite.product.quantity", "failed to read stock")
	}
	return qty, nil
}

// DeleteProduct removes one product by model.
func (s *Store) DeleteProduct(ctx context.Context, model string) error {
	n, err := s.execAffecting(ctx, `DELETE FROM products WHERE model = ?`, model)
	if err != nil {
		return domain.Internal(err, "sqlite.product.delete", "failed to delete product")
	}
	if n == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// DeleteAllProducts purges the catalog.
func (s *Store) DeleteAllProducts(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return domain.Internal(err, "sqlite.product.delete_all", "failed to delete products")
	}
	return nil
}

func nullableString(v string) any {
	if v == "" {
		return nil
	}
	return v
}
