package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// User is an account that can log in. Users are created from the CLI;
// the HTTP API only reads them.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// GetUserByUsername retrieves a user for login. Returns ErrNotFound if absent.
func (d *DB) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	var createdAt string
	err := d.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, full_name, is_active, created_at
		FROM users WHERE username = ?
	`, username).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.IsActive, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", username, err)
	}
	u.CreatedAt = parseTimestamp(createdAt)
	return &u, nil
}

// CreateUser inserts a user. PasswordHash must already be hashed.
func (d *DB) CreateUser(ctx context.Context, u *User) error {
	if _, err := d.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, full_name, is_active)
		VALUES (?, ?, ?, ?, ?, ?)
	`, u.ID, u.Username, u.Email, u.PasswordHash, u.FullName, u.IsActive); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}
