package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

type productRepository struct {
	storage *Storage
}

type addressRepository struct {
	storage *Storage
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT id, title, price, quantity_in_stock, created_at, updated_at FROM products WHERE id=$1`
	var p model.Product
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Title, &p.Price, &p.QuantityInStock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *addressRepository) GetByID(ctx context.Context, id int64) (*model.Address, error) {
	const query = `SELECT id, user_id, full_name, line1, line2, city, zip_code, country, info FROM addresses WHERE id=$1`
	var a model.Address
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.UserID, &a.FullName, &a.Line1, &a.Line2, &a.City, &a.ZipCode, &a.Country, &a.Info)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
