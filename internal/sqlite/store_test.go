package sqlite

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/ezelectronics/ezelectronics/internal"
	"github.com/ezelectronics/ezelectronics/internal/domain"
)

// newTestStore opens an in-memory database with the full schema applied.
// MaxOpenConns is pinned to 1 so the pool cannot hand out a second
// connection with its own empty in-memory database.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, internal.RunMigrations(db))
	return New(db)
}

func seedProduct(t *testing.T, store *Store, model string, category domain.Category, quantity int, price float64) {
	t.Helper()
	require.NoError(t, store.InsertProduct(context.Background(), domain.Product{
		Model:        model,
		Category:     category,
		Quantity:     quantity,
		SellingPrice: price,
		ArrivalDate:  "2024-01-15",
	}))
}
