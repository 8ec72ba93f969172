package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Count returns the number of stored orders.
	Count(ctx context.Context) (int64, error)
	// ExistsByNumber reports whether an order already carries the number.
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	// CreateWithStock decrements stock for every item and inserts the order
	// with its items in one transaction. It returns ErrStockConflict when any
	// item cannot be decremented and ErrAlreadyExists when the number is taken.
	CreateWithStock(ctx context.Context, order model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetByNumber(ctx context.Context, number string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
}
