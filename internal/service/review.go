package service

import (
	"context"

	"github.com/ezelectronics/ezelectronics/internal/domain"
)

// ReviewStore is the persistence surface of product reviews.
// *sqlite.Store satisfies it.
type ReviewStore interface {
	InsertReview(ctx context.Context, r domain.Review) error
	GetUserReview(ctx context.Context, model, user string) (domain.Review, error)
	ListProductReviews(ctx context.Context, model string) ([]domain.Review, error)
	DeleteReview(ctx context.Context, model, user string) error
	DeleteReviewsOfProduct(ctx context.Context, model string) error
	DeleteAllReviews(ctx context.Context) error
}

// ReviewService manages product reviews: one per user and model, scored 1 to
// 5, stamped with the day it was written.
type ReviewService struct {
	store   ReviewStore
	catalog CatalogReader
}

// NewReviewService creates a new ReviewService instance.
func NewReviewService(store ReviewStore, catalog CatalogReader) *ReviewService {
	return &ReviewService{store: store, catalog: catalog}
}

// AddReview records a review of model by user, dated today. A second review
// of the same model by the same user is rejected.
func (s *ReviewService) AddReview(ctx context.Context, model, user string, score int, comment string) error {
	if score < 1 || score > 5 {
		return domain.Unprocessable("review.add", "score must be between 1 and 5")
	}

	if _, err := s.catalog.GetProductByModel(ctx, model); err != nil {
		return err
	}

	return s.store.InsertReview(ctx, domain.Review{
		Model:   model,
		User:    user,
		Score:   score,
		Date:    domain.Today(),
		Comment: comment,
	})
}

// GetProductReviews returns all reviews of model. A known model with no
// reviews yields an empty slice.
func (s *ReviewService) GetProductReviews(ctx context.Context, model string) ([]domain.Review, error) {
	if _, err := s.catalog.GetProductByModel(ctx, model); err != nil {
		return nil, err
	}
	return s.store.ListProductReviews(ctx, model)
}

// DeleteReview removes user's review of model.
func (s *ReviewService) DeleteReview(ctx context.Context, model, user string) error {
	if _, err := s.catalog.GetProductByModel(ctx, model); err != nil {
		return err
	}
	return s.store.DeleteReview(ctx, model, user)
}

// DeleteReviewsOfProduct removes every review of model.
func (s *ReviewService) DeleteReviewsOfProduct(ctx context.Context, model string) error {
	if _, err := s.catalog.GetProductByModel(ctx, model); err != nil {
		return err
	}
	return s.store.DeleteReviewsOfProduct(ctx, model)
}

// DeleteAllReviews purges every review of every product.
func (s *ReviewService) DeleteAllReviews(ctx context.Context) error {
	return s.store.DeleteAllReviews(ctx)
}
