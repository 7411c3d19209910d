package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezelectronics/ezelectronics/internal/domain"
)

func seedUser(t *testing.T, store *Store, username string, role domain.Role) {
	t.Helper()
	require.NoError(t, store.InsertUser(context.Background(), domain.User{
		Username: username,
		Name:     "Test",
		Surname:  "User",
		Role:     role,
	}))
}

func TestStore_InsertUser_Duplicate(t *testing.T) {
	store := newTestStore(t)
	seedUser(t, store, "alice", domain.RoleCustomer)

	err := store.InsertUser(context.Background(), domain.User{
		Username: "alice", Name: "Other", Surname: "Person", Role: domain.RoleManager,
	})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestStore_GetUserByUsername(t *testing.T) {
	store := newTestStore(t)
	seedUser(t, store, "alice", domain.RoleCustomer)

	u, err := store.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, u.Role)
	assert.Empty(t, u.Address)

	_, err = store.GetUserByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestStore_ListUsers_ByRole(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedUser(t, store, "alice", domain.RoleCustomer)
	seedUser(t, store, "bob", domain.RoleCustomer)
	seedUser(t, store, "root", domain.RoleAdmin)

	all, err := store.ListUsers(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	customers, err := store.ListUsers(ctx, domain.RoleCustomer)
	require.NoError(t, err)
	assert.Len(t, customers, 2)
}

func TestStore_UpdateUserInfo(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedUser(t, store, "alice", domain.RoleCustomer)

	u, err := store.UpdateUserInfo(ctx, "alice", "Alice", "Rossi", "Via Roma 1", "1990-04-02")
	require.NoError(t, err)
	assert.Equal(t, "Via Roma 1", u.Address)
	assert.Equal(t, "1990-04-02", u.Birthdate)

	_, err = store.UpdateUserInfo(ctx, "ghost", "A", "B", "C", "1990-01-01")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestStore_DeleteNonAdminUsers_KeepsAdmins(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedUser(t, store, "alice", domain.RoleCustomer)
	seedUser(t, store, "mgr", domain.RoleManager)
	seedUser(t, store, "root", domain.RoleAdmin)

	require.NoError(t, store.DeleteNonAdminUsers(ctx))

	remaining, err := store.ListUsers(ctx, "")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "root", remaining[0].Username)
}
