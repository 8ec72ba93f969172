package app

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/usecase"
)

// HealthChecker reports whether backing storage is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// StoreFacade exposes the use cases behind the HTTP handlers.
type StoreFacade struct {
	auth      *usecase.AuthUseCase
	orders    *usecase.OrderUseCase
	passwords *usecase.PasswordResetUseCase
	health    HealthChecker
}

func NewStoreFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, passwords *usecase.PasswordResetUseCase, health HealthChecker) *StoreFacade {
	return &StoreFacade{auth: auth, orders: orders, passwords: passwords, health: health}
}

func (f *StoreFacade) Register(ctx context.Context, reg model.Registration) (string, error) {
	_, token, err := f.auth.Register(ctx, reg)
	return token, err
}

func (f *StoreFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *StoreFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *StoreFacade) PlaceOrder(ctx context.Context, req model.OrderRequest) (*model.Order, error) {
	return f.orders.PlaceOrder(ctx, req)
}

func (f *StoreFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListOrders(ctx, userID)
}

func (f *StoreFacade) Order(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	return f.orders.GetOrder(ctx, userID, orderID)
}

func (f *StoreFacade) OrderByNumber(ctx context.Context, userID int64, number string) (*model.Order, error) {
	return f.orders.GetOrderByNumber(ctx, userID, number)
}

func (f *StoreFacade) RequestPasswordReset(ctx context.Context, email string) error {
	return f.passwords.RequestPasswordReset(ctx, email)
}

func (f *StoreFacade) CheckPasswordToken(ctx context.Context, token, encryptedUserID string) error {
	return f.passwords.CheckPasswordToken(ctx, token, encryptedUserID)
}

func (f *StoreFacade) ResetPassword(ctx context.Context, token, encryptedUserID, password string) error {
	return f.passwords.ResetPassword(ctx, token, encryptedUserID, password)
}

func (f *StoreFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
