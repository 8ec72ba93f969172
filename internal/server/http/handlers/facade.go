package handlers

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, reg model.Registration) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, req model.OrderRequest) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	Order(ctx context.Context, userID, orderID int64) (*model.Order, error)
	OrderByNumber(ctx context.Context, userID int64, number string) (*model.Order, error)
}

// PasswordFacade covers password recovery.
type PasswordFacade interface {
	RequestPasswordReset(ctx context.Context, email string) error
	CheckPasswordToken(ctx context.Context, token, encryptedUserID string) error
	ResetPassword(ctx context.Context, token, encryptedUserID, password string) error
}

// HealthFacade reports backing storage health.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	OrderFacade
	PasswordFacade
	HealthFacade
}
