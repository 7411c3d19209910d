package service

import (
	"context"
	"time"

	"github.com/ezelectronics/ezelectronics/internal/domain"
)

// UserStore is the persistence surface of account management.
// *sqlite.Store satisfies it.
type UserStore interface {
	InsertUser(ctx context.Context, u domain.User) error
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	ListUsers(ctx context.Context, role domain.Role) ([]domain.User, error)
	UpdateUserInfo(ctx context.Context, username string, name, surname, address, birthdate string) (domain.User, error)
	DeleteUser(ctx context.Context, username string) error
	DeleteNonAdminUsers(ctx context.Context) error
}

// UserService manages accounts and enforces the ownership rules around
// reading, updating and deleting them. Role gating for whole routes lives in
// the middleware; the admin/self rules that depend on the target user live
// here.
type UserService struct {
	store UserStore
}

// NewUserService creates a new UserService instance.
func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

// CreateUser registers a new account. Usernames are unique across all roles.
func (s *UserService) CreateUser(ctx context.Context, user domain.User) error {
	if !user.Role.Valid() {
		return domain.Unprocessable("user.create", "invalid role")
	}
	return s.store.InsertUser(ctx, user)
}

// GetUsers returns every account.
func (s *UserService) GetUsers(ctx context.Context) ([]domain.User, error) {
	return s.store.ListUsers(ctx, "")
}

// GetUsersByRole returns every account holding the given role.
func (s *UserService) GetUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	if !role.Valid() {
		return nil, domain.Unprocessable("user.list", "invalid role")
	}
	return s.store.ListUsers(ctx, role)
}

// GetUser returns the account named by username. Admins may read anyone;
// everyone else only themselves.
func (s *UserService) GetUser(ctx context.Context, caller domain.Principal, username string) (domain.User, error) {
	if caller.Role != domain.RoleAdmin && caller.Username != username {
		return domain.User{}, domain.Unauthorized("user.get", "You cannot access other users' information")
	}
	return s.store.GetUserByUsername(ctx, username)
}

// UpdateUserParams contains the mutable profile fields of an account.
type UpdateUserParams struct {
	Name      string
	Surname   string
	Address   string
	Birthdate string
}

// UpdateUser replaces the profile fields of the account named by username and
// returns the updated record. Non-admins may only update themselves; admins
// may additionally update non-admin accounts. The birthdate must be a valid
// past or present calendar date.
func (s *UserService) UpdateUser(ctx context.Context, caller domain.Principal, username string, params UpdateUserParams) (domain.User, error) {
	birthdate, err := time.Parse(domain.DateLayout, params.Birthdate)
	if err != nil {
		return domain.User{}, domain.Unprocessable("user.update", "birthdate must be a valid YYYY-MM-DD date")
	}
	if birthdate.After(time.Now()) {
		return domain.User{}, domain.Invalid("user.update", "Birthdate cannot be after the current date")
	}

	if caller.Role != domain.RoleAdmin && caller.Username != username {
		return domain.User{}, domain.Unauthorized("user.update", "You cannot update other users' information")
	}

	target, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return domain.User{}, err
	}
	if caller.Role == domain.RoleAdmin && caller.Username != username && target.Role == domain.RoleAdmin {
		return domain.User{}, domain.Unauthorized("user.update", "Admins cannot update other admins")
	}

	return s.store.UpdateUserInfo(ctx, username, params.Name, params.Surname, params.Address, params.Birthdate)
}

// DeleteUser removes the account named by username. Non-admins may only
// delete themselves; admins may delete anyone except another admin.
func (s *UserService) DeleteUser(ctx context.Context, caller domain.Principal, username string) error {
	if caller.Role != domain.RoleAdmin && caller.Username != username {
		return domain.Unauthorized("user.delete", "You cannot delete other users")
	}

	target, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if caller.Role == domain.RoleAdmin && caller.Username != username && target.Role == domain.RoleAdmin {
		return domain.Unauthorized("user.delete", "Admins cannot delete other admins")
	}

	return s.store.DeleteUser(ctx, username)
}

// DeleteAllNonAdminUsers removes every non-admin account.
func (s *UserService) DeleteAllNonAdminUsers(ctx context.Context) error {
	return s.store.DeleteNonAdminUsers(ctx)
}
