package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// ProductRepository reads catalog products.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Product, error)
}

// AddressRepository reads delivery addresses.
type AddressRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Address, error)
}
