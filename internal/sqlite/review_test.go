package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezelectronics/ezelectronics/internal/domain"
)

func seedReview(t *testing.T, store *Store, model, user string, score int) {
	t.Helper()
	require.NoError(t, store.InsertReview(context.Background(), domain.Review{
		Model:   model,
		User:    user,
		Score:   score,
		Date:    "2024-05-01",
		Comment: "ok",
	}))
}

func TestStore_InsertReview_OnePerUserAndModel(t *testing.T) {
	store := newTestStore(t)
	seedProduct(t, store, "iPhone 13", domain.CategorySmartphone, 5, 999)
	seedReview(t, store, "iPhone 13", "alice", 5)

	err := store.InsertReview(context.Background(), domain.Review{
		Model: "iPhone 13", User: "alice", Score: 1, Date: "2024-05-02", Comment: "changed my mind",
	})
	assert.ErrorIs(t, err, domain.ErrReviewAlreadyExists)

	// Same model, different user is fine.
	seedReview(t, store, "iPhone 13", "bob", 3)
}

func TestStore_ListProductReviews(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedReview(t, store, "iPhone 13", "alice", 5)
	seedReview(t, store, "iPhone 13", "bob", 3)
	seedReview(t, store, "ThinkPad X1", "alice", 4)

	reviews, err := store.ListProductReviews(ctx, "iPhone 13")
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	none, err := store.ListProductReviews(ctx, "unreviewed")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_DeleteReview(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedReview(t, store, "iPhone 13", "alice", 5)

	assert.ErrorIs(t, store.DeleteReview(ctx, "iPhone 13", "bob"), domain.ErrReviewNotFound)
	require.NoError(t, store.DeleteReview(ctx, "iPhone 13", "alice"))

	reviews, err := store.ListProductReviews(ctx, "iPhone 13")
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestStore_DeleteReviewsOfProduct(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedReview(t, store, "iPhone 13", "alice", 5)
	seedReview(t, store, "iPhone 13", "bob", 3)
	seedReview(t, store, "ThinkPad X1", "alice", 4)

	require.NoError(t, store.DeleteReviewsOfProduct(ctx, "iPhone 13"))

	gone, err := store.ListProductReviews(ctx, "iPhone 13")
	require.NoError(t, err)
	assert.Empty(t, gone)

	kept, err := store.ListProductReviews(ctx, "ThinkPad X1")
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}
