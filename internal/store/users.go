package store

import (
	"context"
	"database/sql"

	"github.com/shelfmark/shelfmark-server/internal/domain"
)

// scanUser scans a sql.Row (or sql.Rows via its Scan method) into a domain.User.
func scanUser(scanner interface{ Scan(dest ...any) error }) (domain.User, error) {
	var (
		u         domain.User
		createdAt string
	)
	if err := scanner.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.RoleID, &createdAt); err != nil {
		return domain.User{}, err
	}
	var err error
	u.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// ListUsers returns every user in table scan order.
func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, password_hash, role_id, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, mapQueryError(err, "users")
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, mapQueryError(err, "users")
		}
		users = append(users, u)
	}
	return users, mapQueryError(rows.Err(), "users")
}

// CreateUser inserts a new user and returns its generated id.
func (s *Store) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, role_id, created_at) VALUES (?, ?, ?, ?)`,
		u.Username, u.PasswordHash, u.RoleID, formatTime(u.CreatedAt))
	if err != nil {
		return 0, mapError(err, "user")
	}
	return lastInsertID(res)
}

// UpdateUser rewrites the mutable columns of a user row.
func (s *Store) UpdateUser(ctx context.Context, u domain.User) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET username = ?, password_hash = ?, role_id = ? WHERE id = ?`,
		u.Username, u.PasswordHash, u.RoleID, u.ID)
	return mapError(err, "user")
}

// DeleteUser removes a user row.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	return mapError(err, "user")
}

// ListRoles returns every role in table scan order.
func (s *Store) ListRoles(ctx context.Context) ([]domain.Role, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM roles ORDER BY id`)
	if err != nil {
		return nil, mapQueryError(err, "roles")
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var r domain.Role
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, mapQueryError(err, "roles")
		}
		roles = append(roles, r)
	}
	return roles, mapQueryError(rows.Err(), "roles")
}

// CreateRole inserts a new role and returns its generated id.
func (s *Store) CreateRole(ctx context.Context, name string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO roles (name) VALUES (?)`, name)
	if err != nil {
		return 0, mapError(err, "role")
	}
	return lastInsertID(res)
}

func lastInsertID(res sql.Result) (int64, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, mapQueryError(err, "last insert id")
	}
	return id, nil
}
