// Package auth implements first-party admin authentication.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentinel errors for the service layer.
var (
	ErrAdminNotFound = errors.New("admin not found")
	ErrTokenNotFound = errors.New("refresh token not found")
)

// Admin is a back-office user.
type Admin struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	DisplayName  string
	CreatedAt    time.Time
}

// Repository reads admins and tracks refresh tokens.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetAdminByEmail fetches an admin by lower-cased email.
func (r *Repository) GetAdminByEmail(ctx context.Context, email string) (*Admin, error) {
	var admin Admin
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, display_name, created_at
		FROM pago_admins WHERE email = $1`, email).
		Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.DisplayName, &admin.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// GetAdminByID fetches an admin by id.
func (r *Repository) GetAdminByID(ctx context.Context, id uuid.UUID) (*Admin, error) {
	var admin Admin
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, display_name, created_at
		FROM pago_admins WHERE id = $1`, id).
		Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.DisplayName, &admin.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// StoreRefreshToken records an issued refresh token by its jti.
func (r *Repository) StoreRefreshToken(ctx context.Context, jti, adminID uuid.UUID, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO pago_refresh_tokens (id, admin_id, expires_at)
		VALUES ($1, $2, $3)`, jti, adminID, expiresAt)
	return err
}

// ConsumeRefreshToken revokes the token and returns its owner. Expired
// or already-revoked tokens are reported as not found.
func (r *Repository) ConsumeRefreshToken(ctx context.Context, jti uuid.UUID) (uuid.UUID, error) {
	var adminID uuid.UUID
	err := r.pool.QueryRow(ctx, `
		UPDATE pago_refresh_tokens
		SET revoked_at = NOW()
		WHERE id = $1 AND revoked_at IS NULL AND expires_at > NOW()
		RETURNING admin_id`, jti).Scan(&adminID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, ErrTokenNotFound
	}
	if err != nil {
		return uuid.Nil, err
	}
	return adminID, nil
}
