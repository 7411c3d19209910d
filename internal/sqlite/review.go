package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ezelectronics/ezelectronics/internal/domain"
)

// InsertReview stores a new review.
func (s *Store) InsertReview(ctx context.Context, r domain.Review) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reviews (model, user, score, date, comment) VALUES (?, ?, ?, ?, ?)`,
		r.Model, r.User, r.Score, r.Date, r.Comment)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrReviewAlreadyExists
		}
		return domain.Internal(err, "sqlite.review.insert", "failed to insert review")
	}
	return nil
}

// GetUserReview returns the review a user left for a model.
func (s *Store) GetUserReview(ctx context.Context, model, username string) (domain.Review, error) {
	var r domain.Review
	err := s.db.QueryRowContext(ctx,
		`SELECT model, user, score, date, comment FROM reviews WHERE model = ? AND user = ?`,
		model, username).Scan(&r.Model, &r.User, &r.Score, &r.Date, &r.Comment)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Review{}, domain.ErrReviewNotFound
		}
		return domain.Review{}, domain.Internal(err, "sqlite.review.get", "failed to get review")
	}
	return r, nil
}

// ListProductReviews returns every review for a model.
func (s *Store) ListProductReviews(ctx context.Context, model string) ([]domain.Review, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT model, user, score, date, comment FROM reviews WHERE model = ?`, model)
	if err != nil {
		return nil, domain.Internal(err, "sqlite.review.list", "failed to list reviews")
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var r domain.Review
		if err := rows.Scan(&r.Model, &r.User, &r.Score, &r.Date, &r.Comment); err != nil {
			return nil, domain.Internal(err, "sqlite.review.list", "failed to scan review")
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "sqlite.review.list", "failed to read reviews")
	}
	return reviews, nil
}

// DeleteReview removes the review a user left for a model.
func (s *Store) DeleteReview(ctx context.Context, model, username string) error {
	n, err := s.execAffecting(ctx,
		`DELETE FROM reviews WHERE model = ? AND user = ?`, model, username)
	if err != nil {
		return domain.Internal(err, "sqlite.review.delete", "failed to delete review")
	}
	if n == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

// DeleteReviewsOfProduct removes every review for a model.
func (s *Store) DeleteReviewsOfProduct(ctx context.Context, model string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE model = ?`, model); err != nil {
		return domain.Internal(err, "sqlite.review.delete_product", "failed to delete reviews")
	}
	return nil
}

// DeleteAllReviews removes every review of every product.
func (s *Store) DeleteAllReviews(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM reviews`); err != nil {
		return domain.Internal(err, "sqlite.review.delete_all", "failed to delete reviews")
	}
	return nil
}
