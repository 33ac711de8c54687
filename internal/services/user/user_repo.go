package user

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepo handles database operations for users and their auth tokens
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new user row
func (r *UserRepo) Create(ctx context.Context, email, fullName, passwordHash string) (*User, error) {
	query := `
        INSERT INTO users (email, full_name, password_hash)
        VALUES ($1, $2, $3)
        RETURNING id, email, full_name, password_hash, is_active, is_staff, date_joined
    `

	var user User
	err := r.db.GetContext(ctx, &user, query, email, fullName, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// GetByEmail retrieves a user by email, case-insensitively
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `
        SELECT id, email, full_name, password_hash, is_active, is_staff, date_joined
        FROM users
        WHERE LOWER(email) = LOWER($1)
    `

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `
        SELECT id, email, full_name, password_hash, is_active, is_staff, date_joined
        FROM users
        WHERE id = $1
    `

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// ExistsByEmail reports whether any user holds this email, case-insensitively
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`, email)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}

	return exists, nil
}

// GetByToken resolves an opaque bearer token to its user
func (r *UserRepo) GetByToken(ctx context.Context, token string) (*User, error) {
	query := `
        SELECT u.id, u.email, u.full_name, u.password_hash, u.is_active, u.is_staff, u.date_joined
        FROM users u
        JOIN auth_tokens t ON t.user_id = u.id
        WHERE t.token = $1
    `

	var user User
	err := r.db.GetContext(ctx, &user, query, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by token: %w", err)
	}

	return &user, nil
}

// GetOrCreateToken returns the user's token, minting one on first use.
// Runs in a transaction so concurrent logins cannot mint two tokens.
func (r *UserRepo) GetOrCreateToken(ctx context.Context, userID int64) (string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var token string
	err = tx.GetContext(ctx, &token, `SELECT token FROM auth_tokens WHERE user_id = $1`, userID)
	if err == nil {
		return token, tx.Commit()
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("failed to get token: %w", err)
	}

	token, err = generateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	query := `
        INSERT INTO auth_tokens (token, user_id)
        VALUES ($1, $2)
        ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
        RETURNING token
    `
	err = tx.GetContext(ctx, &token, query, token, userID)
	if err != nil {
		return "", fmt.Errorf("failed to create token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	return token, nil
}

// generateToken mints a 40-hex-char opaque credential.
func generateToken() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}
