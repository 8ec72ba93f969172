package test

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceFn    func(context.Context, model.OrderRequest) (*model.Order, error)
	OrdersFn   func(context.Context, int64) ([]model.Order, error)
	OrderFn    func(context.Context, int64, int64) (*model.Order, error)
	ByNumberFn func(context.Context, int64, string) (*model.Order, error)
}

// PlaceOrder delegates to provided function or echoes the request as an order.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, req model.OrderRequest) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, req)
	}
	return &model.Order{ID: 1, Number: "1", Status: model.OrderStatusAwaitingDelivery, UserID: req.UserID, AddressID: req.AddressID, ShippingCosts: req.ShippingCosts}, nil
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{ID: 1, Number: "1", UserID: userID}}, nil
}

// Order returns a single order by id.
func (s OrderFacadeStub) Order(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, orderID)
	}
	return &model.Order{ID: orderID, Number: "1", UserID: userID}, nil
}

// OrderByNumber returns a single order by number.
func (s OrderFacadeStub) OrderByNumber(ctx context.Context, userID int64, number string) (*model.Order, error) {
	if s.ByNumberFn != nil {
		return s.ByNumberFn(ctx, userID, number)
	}
	return &model.Order{ID: 1, Number: number, UserID: userID}, nil
}

// PasswordFacadeStub simulates password recovery endpoints.
type PasswordFacadeStub struct {
	RequestFn func(context.Context, string) error
	CheckFn   func(context.Context, string, string) error
	ResetFn   func(context.Context, string, string, string) error
}

// RequestPasswordReset runs override or succeeds.
func (s PasswordFacadeStub) RequestPasswordReset(ctx context.Context, email string) error {
	if s.RequestFn != nil {
		return s.RequestFn(ctx, email)
	}
	return nil
}

// CheckPasswordToken runs override or succeeds.
func (s PasswordFacadeStub) CheckPasswordToken(ctx context.Context, token, userID string) error {
	if s.CheckFn != nil {
		return s.CheckFn(ctx, token, userID)
	}
	return nil
}

// ResetPassword runs override or succeeds.
func (s PasswordFacadeStub) ResetPassword(ctx context.Context, token, userID, password string) error {
	if s.ResetFn != nil {
		return s.ResetFn(ctx, token, userID, password)
	}
	return nil
}

// StoreFacadeStub aggregates facade dependencies for HTTP layer tests.
type StoreFacadeStub struct {
	AuthFacadeStub
	PasswordFacadeStub
	OrderFacadeStub
	HealthFn func(context.Context) error
}

// HealthCheck runs override or reports healthy.
func (s StoreFacadeStub) HealthCheck(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}
