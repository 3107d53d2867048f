package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shift-tracker/internal/domain"
)

// PasswordResetRepository manages verification code persistence.
type PasswordResetRepository interface {
	Create(ctx context.Context, code *domain.PasswordResetCode) error
	// LatestForEmail returns the most recently issued code for email.
	LatestForEmail(ctx context.Context, email string) (*domain.PasswordResetCode, error)
	MarkUsed(ctx context.Context, id string) error
}

type passwordResetRepository struct {
	pool *pgxpool.Pool
}

// NewPasswordResetRepository constructs repository.
func NewPasswordResetRepository(pool *pgxpool.Pool) PasswordResetRepository {
	return &passwordResetRepository{pool: pool}
}

func (r *passwordResetRepository) Create(ctx context.Context, code *domain.PasswordResetCode) error {
	const query = `
        INSERT INTO password_reset_codes (email, code_hash, expires_at)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		code.Email,
		code.CodeHash,
		code.ExpiresAt,
	).Scan(&code.ID, &code.CreatedAt)
	return mapError(err, nil)
}

func (r *passwordResetRepository) LatestForEmail(ctx context.Context, email string) (*domain.PasswordResetCode, error) {
	const query = `
        SELECT id, email, code_hash, expires_at, used_at, created_at
        FROM password_reset_codes WHERE email=$1
        ORDER BY created_at DESC LIMIT 1`
	var code domain.PasswordResetCode
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&code.ID,
		&code.Email,
		&code.CodeHash,
		&code.ExpiresAt,
		&code.UsedAt,
		&code.CreatedAt,
	); err != nil {
		return nil, mapError(err, nil)
	}
	return &code, nil
}

func (r *passwordResetRepository) MarkUsed(ctx context.Context, id string) error {
	const query = `UPDATE password_reset_codes SET used_at=NOW() WHERE id=$1 AND used_at IS NULL`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return mapError(err, nil)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInvalidResetCode
	}
	return nil
}
