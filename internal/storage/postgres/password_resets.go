package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

type passwordResetRepository struct {
	storage *Storage
}

func (r *passwordResetRepository) Create(ctx context.Context, reset model.PasswordReset) (*model.PasswordReset, error) {
	const query = `INSERT INTO password_resets (token, user_id, created_at) VALUES ($1, $2, $3) RETURNING id`
	if err := r.storage.pool.QueryRow(ctx, query, reset.Token, reset.UserID, reset.CreatedAt).Scan(&reset.ID); err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &reset, nil
}

func (r *passwordResetRepository) GetByToken(ctx context.Context, token string) (*model.PasswordReset, error) {
	const query = `SELECT id, token, user_id, created_at FROM password_resets WHERE token=$1`
	var reset model.PasswordReset
	err := r.storage.pool.QueryRow(ctx, query, token).Scan(&reset.ID, &reset.Token, &reset.UserID, &reset.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &reset, nil
}

func (r *passwordResetRepository) ListCreatedSince(ctx context.Context, userID int64, since time.Time) ([]model.PasswordReset, error) {
	const query = `SELECT id, token, user_id, created_at FROM password_resets
                   WHERE user_id=$1 AND created_at > $2 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PasswordReset
	for rows.Next() {
		var reset model.PasswordReset
		if err := rows.Scan(&reset.ID, &reset.Token, &reset.UserID, &reset.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, reset)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
