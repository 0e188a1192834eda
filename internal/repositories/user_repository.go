package repositories

import (
	"context"
	"database/sql"

	"backend/internal/domain/models"
)

// UserRepository wraps DB access for staff accounts.
type UserRepository struct {
	DB *sql.DB
}

// GetByLogin finds a user by email or username and returns the stored
// password hash alongside the account.
func (r UserRepository) GetByLogin(ctx context.Context, login string) (models.User, string, error) {
	var (
		user models.User
		hash string
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, username, email, phone, password_hash, role, created_at
		FROM users
		WHERE email = ? OR username = ?
	`, login, login).Scan(
		&user.ID, &user.Name, &user.Username, &user.Email, &user.Phone, &hash, &user.Role, &user.CreatedAt,
	)
	if err != nil {
		return models.User{}, "", err
	}
	return user, hash, nil
}

// Exists reports whether an account with the given email or username is taken.
func (r UserRepository) Exists(ctx context.Context, email, username string) (bool, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM users
		WHERE email = ? OR username = ?
	`, email, username).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a staff account with a pre-hashed password.
func (r UserRepository) Create(ctx context.Context, user models.User, passwordHash string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (name, username, email, phone, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW())
	`, user.Name, user.Username, user.Email, user.Phone, passwordHash, user.Role)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
