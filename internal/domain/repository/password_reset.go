package repository

import (
	"context"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// PasswordResetRepository persists password reset tokens.
type PasswordResetRepository interface {
	Create(ctx context.Context, reset model.PasswordReset) (*model.PasswordReset, error)
	GetByToken(ctx context.Context, token string) (*model.PasswordReset, error)
	ListCreatedSince(ctx context.Context, userID int64, since time.Time) ([]model.PasswordReset, error)
}
