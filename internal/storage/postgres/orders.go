package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

const orderColumns = `id, order_number, status, shipping_costs, total, coupon, user_id, address_id, created_at, updated_at`

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM orders`
	var n int64
	if err := r.storage.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *orderRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM orders WHERE order_number=$1)`
	var exists bool
	if err := r.storage.pool.QueryRow(ctx, query, number).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CreateWithStock decrements stock row by row in product id order, so
// concurrent placements lock rows in the same sequence, then inserts the order.
func (r *orderRepository) CreateWithStock(ctx context.Context, order model.Order) (*model.Order, error) {
	const decrementStock = `UPDATE products SET quantity_in_stock = quantity_in_stock - $2, updated_at = NOW()
                            WHERE id = $1 AND quantity_in_stock >= $2`
	const insertOrder = `INSERT INTO orders (order_number, status, shipping_costs, total, coupon, user_id, address_id)
                         VALUES ($1, $2, $3, $4, $5, $6, $7)
                         RETURNING id, created_at, updated_at`
	const insertItem = `INSERT INTO order_items (order_id, product_id, quantity, unit_price)
                        VALUES ($1, $2, $3, $4)
                        RETURNING id`

	order.Items = append([]model.OrderItem(nil), order.Items...)
	demand := aggregateDemand(order.Items)

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, d := range demand {
			tag, err := tx.Exec(ctx, decrementStock, d.productID, d.quantity)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("product %d: %w", d.productID, domainErrors.ErrStockConflict)
			}
		}

		err := tx.QueryRow(ctx, insertOrder, order.Number, order.Status, order.ShippingCosts, order.Total, order.Coupon, order.UserID, order.AddressID).
			Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}

		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID
			if err := tx.QueryRow(ctx, insertItem, order.ID, item.ProductID, item.Quantity, item.UnitPrice).Scan(&item.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

type productDemand struct {
	productID int64
	quantity  int
}

func aggregateDemand(items []model.OrderItem) []productDemand {
	totals := make(map[int64]int, len(items))
	for _, item := range items {
		totals[item.ProductID] += item.Quantity
	}
	demand := make([]productDemand, 0, len(totals))
	for id, qty := range totals {
		demand = append(demand, productDemand{productID: id, quantity: qty})
	}
	sort.Slice(demand, func(i, j int) bool { return demand[i].productID < demand[j].productID })
	return demand
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	return r.getOne(ctx, query, id)
}

func (r *orderRepository) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE order_number=$1`
	return r.getOne(ctx, query, number)
}

func (r *orderRepository) getOne(ctx context.Context, query string, arg any) (*model.Order, error) {
	var o model.Order
	err := r.storage.pool.QueryRow(ctx, query, arg).Scan(
		&o.ID, &o.Number, &o.Status, &o.ShippingCosts, &o.Total, &o.Coupon, &o.UserID, &o.AddressID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	orders := []model.Order{o}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + `
                   FROM orders WHERE user_id=$1 ORDER BY created_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.Number, &o.Status, &o.ShippingCosts, &o.Total, &o.Coupon, &o.UserID, &o.AddressID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return result, nil
	}
	if err := r.attachItems(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) attachItems(ctx context.Context, orders []model.Order) error {
	const query = `SELECT id, order_id, product_id, quantity, unit_price
                   FROM order_items WHERE order_id = ANY($1) ORDER BY id`
	ids := make([]int64, 0, len(orders))
	index := make(map[int64]int, len(orders))
	for i, o := range orders {
		ids = append(ids, o.ID)
		index[o.ID] = i
	}

	rows, err := r.storage.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return err
		}
		if i, ok := index[item.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return rows.Err()
}
