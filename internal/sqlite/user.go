package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ezelectronics/ezelectronics/internal/domain"
)

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var (
		u         domain.User
		address   sql.NullString
		birthdate sql.NullString
	)
	err := row.Scan(&u.Username, &u.Name, &u.Surname, &u.Role, &address, &birthdate)
	if err != nil {
		return domain.User{}, err
	}
	u.Address = address.String
	u.Birthdate = birthdate.String
	return u, nil
}

// InsertUser creates a new account record.
func (s *Store) InsertUser(ctx context.Context, u domain.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, name, surname, role, address, birthdate)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.Username, u.Name, u.Surname, u.Role, nullableString(u.Address), nullableString(u.Birthdate))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return domain.Internal(err, "sqlite.user.insert", "failed to insert user")
	}
	return nil
}

// GetUserByUsername returns one account record.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT username, name, surname, role, address, birthdate FROM users WHERE username = ?`,
		username)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, domain.Internal(err, "sqlite.user.get", "failed to get user")
	}
	return u, nil
}

// ListUsers returns all accounts. An empty role lists everyone; otherwise
// only accounts with that role.
func (s *Store) ListUsers(ctx context.Context, role domain.Role) ([]domain.User, error) {
	query := `SELECT username, name, surname, role, address, birthdate FROM users`
	var args []any
	if role != "" {
		query += ` WHERE role = ?`
		args = append(args, role)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.Internal(err, "sqlite.user.list", "failed to list users")
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, domain.Internal(err, "sqlite.user.list", "failed to scan user")
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "sqlite.user.list", "failed to read users")
	}
	return users, nil
}

// UpdateUserInfo replaces the personal fields of an account and returns the
// updated record.
func (s *Store) UpdateUserInfo(ctx context.Context, username, name, surname, address, birthdate string) (domain.User, error) {
	n, err := s.execAffecting(ctx,
		`UPDATE users SET name = ?, surname = ?, address = ?, birthdate = ? WHERE username = ?`,
		name, surname, address, birthdate, username)
	if err != nil {
		return domain.User{}, domain.Internal(err, "sqlite.user.update", "failed to update user")
	}
	if n == 0 {
		return domain.User{}, domain.ErrUserNotFound
	}
	return s.GetUserByUsername(ctx, username)
}

// DeleteUser removes one account.
func (s *Store) DeleteUser(ctx context.Context, username string) error {
	n, err := s.execAffecting(ctx, `DELETE FROM users WHERE username = ?`, username)
	if err != nil {
		return domain.Internal(err, "sqlite.user.delete", "failed to delete user")
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// DeleteNonAdminUsers removes every account that is not an admin.
func (s *Store) DeleteNonAdminUsers(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM users WHERE role != ?`, domain.RoleAdmin); err != nil {
		return domain.Internal(err, "sqlite.user.delete_all", "failed to delete users")
	}
	return nil
}
