package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// maxPlaceAttempts bounds retries when a concurrent placement takes the same order number.
const maxPlaceAttempts = 3

// PaymentValidator approves a normalized card number.
type PaymentValidator interface {
	Validate(ctx context.Context, cardNumber string) (bool, error)
}

// OrderUseCase encapsulates order placement and lookup.
type OrderUseCase struct {
	users     repository.UserRepository
	addresses repository.AddressRepository
	products  repository.ProductRepository
	orders    repository.OrderRepository
	payments  PaymentValidator
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	users repository.UserRepository,
	addresses repository.AddressRepository,
	products repository.ProductRepository,
	orders repository.OrderRepository,
	payments PaymentValidator,
) *OrderUseCase {
	return &OrderUseCase{users: users, addresses: addresses, products: products, orders: orders, payments: payments}
}

// PlaceOrder validates the cart and the card, then persists the order while
// decrementing stock in the same transaction.
func (u *OrderUseCase) PlaceOrder(ctx context.Context, in model.OrderRequest) (*model.Order, error) {
	if err := validatePlaceOrder(in); err != nil {
		return nil, err
	}

	if _, err := u.users.GetByID(ctx, in.UserID); err != nil {
		return nil, translateNotFound(err, domainErrors.ErrUserNotFound)
	}

	address, err := u.addresses.GetByID(ctx, in.AddressID)
	if err != nil {
		return nil, translateNotFound(err, domainErrors.ErrAddressNotFound)
	}
	if address.UserID != in.UserID {
		return nil, domainErrors.ErrAddressNotFound
	}

	items := make([]model.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		product, err := u.products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, translateNotFound(err, domainErrors.ErrProductNotFound)
		}
		if line.Quantity > product.QuantityInStock {
			return nil, fmt.Errorf("product %d: %w", product.ID, domainErrors.ErrOutOfStock)
		}
		items = append(items, model.OrderItem{ProductID: product.ID, Quantity: line.Quantity, UnitPrice: product.Price})
	}

	ok, err := u.payments.Validate(ctx, NormalizeCardNumber(in.CardNumber))
	if err != nil {
		return nil, fmt.Errorf("validate payment: %w", err)
	}
	if !ok {
		return nil, domainErrors.ErrPaymentFailed
	}

	order := model.Order{
		Status:        model.OrderStatusAwaitingDelivery,
		ShippingCosts: in.ShippingCosts,
		Total:         OrderTotal(items, in.ShippingCosts),
		Coupon:        in.Coupon,
		UserID:        in.UserID,
		AddressID:     in.AddressID,
		Items:         items,
	}

	for attempt := 1; ; attempt++ {
		number, err := u.nextOrderNumber(ctx)
		if err != nil {
			return nil, err
		}
		order.Number = number

		created, err := u.orders.CreateWithStock(ctx, order)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, domainErrors.ErrAlreadyExists) || attempt == maxPlaceAttempts {
			return nil, err
		}
	}
}

// nextOrderNumber returns count+1, skipping numbers that are already taken.
func (u *OrderUseCase) nextOrderNumber(ctx context.Context) (string, error) {
	count, err := u.orders.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("count orders: %w", err)
	}
	for n := count + 1; ; n++ {
		number := strconv.FormatInt(n, 10)
		exists, err := u.orders.ExistsByNumber(ctx, number)
		if err != nil {
			return "", fmt.Errorf("check order number: %w", err)
		}
		if !exists {
			return number, nil
		}
	}
}

// GetOrder returns an order owned by userID.
func (u *OrderUseCase) GetOrder(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	return ownedOrder(order, err, userID)
}

// GetOrderByNumber returns an order owned by userID by its human-facing number.
func (u *OrderUseCase) GetOrderByNumber(ctx context.Context, userID int64, number string) (*model.Order, error) {
	order, err := u.orders.GetByNumber(ctx, number)
	return ownedOrder(order, err, userID)
}

// ListOrders returns the user's orders, newest first.
func (u *OrderUseCase) ListOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

func ownedOrder(order *model.Order, err error, userID int64) (*model.Order, error) {
	if err != nil {
		return nil, translateNotFound(err, domainErrors.ErrOrderNotFound)
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrOrderNotFound
	}
	return order, nil
}

// translateNotFound replaces a generic ErrNotFound with the entity specific sentinel.
func translateNotFound(err, target error) error {
	if errors.Is(err, domainErrors.ErrNotFound) {
		return target
	}
	return err
}
