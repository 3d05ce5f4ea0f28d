package postgres

import (
	"context"
	"fmt"

	"github.com/garzadist/fieldops/internal/domain/user"
)

// GetUser returns a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, role, created_at FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, notFoundWrap(err, "get user %s", id)
	}
	return &u, nil
}

// ListUsersByRole returns all users holding the given role.
func (s *Store) ListUsersByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, email, role, created_at FROM users WHERE role = $1 ORDER BY name ASC`, string(role))
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
