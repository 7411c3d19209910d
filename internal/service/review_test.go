package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezelectronics/ezelectronics/internal/domain"
)

// mockReviewStore implements ReviewStore for testing
type mockReviewStore struct {
	InsertReviewFunc           func(ctx context.Context, r domain.Review) error
	GetUserReviewFunc          func(ctx context.Context, model, user string) (domain.Review, error)
	ListProductReviewsFunc     func(ctx context.Context, model string) ([]domain.Review, error)
	DeleteReviewFunc           func(ctx context.Context, model, user string) error
	DeleteReviewsOfProductFunc func(ctx context.Context, model string) error
	DeleteAllReviewsFunc       func(ctx context.Context) error
}

func (m *mockReviewStore) InsertReview(ctx context.Context, r domain.Review) error {
	if m.InsertReviewFunc != nil {
		return m.InsertReviewFunc(ctx, r)
	}
	return errors.New("not implemented in mock")
}

func (m *mockReviewStore) GetUserReview(ctx context.Context, model, user string) (domain.Review, error) {
	if m.GetUserReviewFunc != nil {
		return m.GetUserReviewFunc(ctx, model, user)
	}
	return domain.Review{}, domain.ErrReviewNotFound
}

func (m *mockReviewStore) ListProductReviews(ctx context.Context, model string) ([]domain.Review, error) {
	if m.ListProductReviewsFunc != nil {
		return m.ListProductReviewsFunc(ctx, model)
	}
	return nil, nil
}

func (m *mockReviewStore) DeleteReview(ctx context.Context, model, user string) error {
	if m.DeleteReviewFunc != nil {
		return m.DeleteReviewFunc(ctx, model, user)
	}
	return errors.New("not implemented in mock")
}

func (m *mockReviewStore) DeleteReviewsOfProduct(ctx context.Context, model string) error {
	if m.DeleteReviewsOfProductFunc != nil {
		return m.DeleteReviewsOfProductFunc(ctx, model)
	}
	return errors.New("not implemented in mock")
}

func (m *mockReviewStore) DeleteAllReviews(ctx context.Context) error {
	if m.DeleteAllReviewsFunc != nil {
		return m.DeleteAllReviewsFunc(ctx)
	}
	return errors.New("not implemented in mock")
}

func TestReviewService_AddReview_Success(t *testing.T) {
	catalog := catalogWith(map[string]domain.Product{
		"iPhone 13": {Model: "iPhone 13", Quantity: 3},
	})

	var inserted domain.Review
	store := &mockReviewStore{
		InsertReviewFunc: func(ctx context.Context, r domain.Review) error {
			inserted = r
			return nil
		},
	}

	svc := NewReviewService(store, catalog)
	err := svc.AddReview(context.Background(), "iPhone 13", "alice", 5, "great phone")
	require.NoError(t, err)

	assert.Equal(t, "alice", inserted.User)
	assert.Equal(t, 5, inserted.Score)
	assert.Equal(t, domain.Today(), inserted.Date)
}

func TestReviewService_AddReview_ScoreOutOfRange(t *testing.T) {
	svc := NewReviewService(&mockReviewStore{}, &mockCatalog{})

	for _, score := range []int{0, 6, -1} {
		err := svc.AddReview(context.Background(), "iPhone 13", "alice", score, "meh")
		assert.Equal(t, domain.EUNPROCESSABLE, domain.ErrorCode(err))
	}
}

func TestReviewService_AddReview_ProductNotFound(t *testing.T) {
	svc := NewReviewService(&mockReviewStore{}, &mockCatalog{})

	err := svc.AddReview(context.Background(), "nope", "alice", 4, "what")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestReviewService_AddReview_Duplicate(t *testing.T) {
	catalog := catalogWith(map[string]domain.Product{
		"iPhone 13": {Model: "iPhone 13"},
	})
	store := &mockReviewStore{
		InsertReviewFunc: func(ctx context.Context, r domain.Review) error {
			return domain.ErrReviewAlreadyExists
		},
	}

	svc := NewReviewService(store, catalog)
	err := svc.AddReview(context.Background(), "iPhone 13", "alice", 4, "again")
	assert.ErrorIs(t, err, domain.ErrReviewAlreadyExists)
}

func TestReviewService_GetProductReviews_EmptyIsFine(t *testing.T) {
	catalog := catalogWith(map[string]domain.Product{
		"iPhone 13": {Model: "iPhone 13"},
	})
	svc := NewReviewService(&mockReviewStore{}, catalog)

	reviews, err := svc.GetProductReviews(context.Background(), "iPhone 13")
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestReviewService_GetProductReviews_ProductNotFound(t *testing.T) {
	svc := NewReviewService(&mockReviewStore{}, &mockCatalog{})

	_, err := svc.GetProductReviews(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestReviewService_DeleteReview_NotReviewed(t *testing.T) {
	catalog := catalogWith(map[string]domain.Product{
		"iPhone 13": {Model: "iPhone 13"},
	})
	store := &mockReviewStore{
		DeleteReviewFunc: func(ctx context.Context, model, user string) error {
			return domain.ErrReviewNotFound
		},
	}

	svc := NewReviewService(store, catalog)
	err := svc.DeleteReview(context.Background(), "iPhone 13", "alice")
	assert.ErrorIs(t, err, domain.ErrReviewNotFound)
}

func TestReviewService_DeleteReview_ProductNotFound(t *testing.T) {
	svc := NewReviewService(&mockReviewStore{}, &mockCatalog{})

	err := svc.DeleteReview(context.Background(), "nope", "alice")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestReviewService_DeleteReviewsOfProduct_ProductNotFound(t *testing.T) {
	svc := NewReviewService(&mockReviewStore{}, &mockCatalog{})

	err := svc.DeleteReviewsOfProduct(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
