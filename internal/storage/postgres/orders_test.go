package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

var (
	orderRowColumns = []string{"id", "order_number", "status", "shipping_costs", "total", "coupon", "user_id", "address_id", "created_at", "updated_at"}
	itemRowColumns  = []string{"id", "order_id", "product_id", "quantity", "unit_price"}
)

func sampleOrder() model.Order {
	return model.Order{
		Number:        "1",
		Status:        model.OrderStatusAwaitingDelivery,
		ShippingCosts: 500,
		Total:         5700,
		UserID:        1,
		AddressID:     2,
		Items: []model.OrderItem{
			{ProductID: 4, Quantity: 1, UnitPrice: 1200},
			{ProductID: 3, Quantity: 2, UnitPrice: 1000},
			{ProductID: 4, Quantity: 1, UnitPrice: 1200},
		},
	}
}

func TestOrderRepositoryCount(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(pgxmockv3.NewRows([]string{"count"}).AddRow(int64(41)))
	n, err := storage.Orders().Count(context.Background())
	if err != nil || n != 41 {
		t.Fatalf("unexpected count %d err %v", n, err)
	}

	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("boom"))
	if _, err := storage.Orders().Count(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryExistsByNumber(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT EXISTS").WithArgs("42").WillReturnRows(pgxmockv3.NewRows([]string{"exists"}).AddRow(true))
	exists, err := storage.Orders().ExistsByNumber(context.Background(), "42")
	if err != nil || !exists {
		t.Fatalf("expected existing number, got %v err %v", exists, err)
	}

	mock.ExpectQuery("SELECT EXISTS").WithArgs("43").WillReturnError(errors.New("boom"))
	if _, err := storage.Orders().ExistsByNumber(context.Background(), "43"); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestAggregateDemand(t *testing.T) {
	demand := aggregateDemand(sampleOrder().Items)
	if len(demand) != 2 {
		t.Fatalf("expected 2 products, got %d", len(demand))
	}
	if demand[0].productID != 3 || demand[0].quantity != 2 {
		t.Fatalf("unexpected first demand: %+v", demand[0])
	}
	if demand[1].productID != 4 || demand[1].quantity != 2 {
		t.Fatalf("unexpected second demand: %+v", demand[1])
	}
}

func TestOrderRepositoryCreateWithStock(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	now := time.Now().UTC()
	order := sampleOrder()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE products SET quantity_in_stock").WithArgs(int64(3), 2).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE products SET quantity_in_stock").WithArgs(int64(4), 2).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("1", model.OrderStatusAwaitingDelivery, int64(500), int64(5700), pgxmockv3.AnyArg(), int64(1), int64(2)).
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(10), now, now))
	for i, item := range order.Items {
		mock.ExpectQuery("INSERT INTO order_items").
			WithArgs(int64(10), item.ProductID, item.Quantity, item.UnitPrice).
			WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(100 + i)))
	}
	mock.ExpectCommit()

	created, err := storage.Orders().CreateWithStock(context.Background(), order)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 10 || !created.CreatedAt.Equal(now) {
		t.Fatalf("unexpected order: %+v", created)
	}
	for i, item := range created.Items {
		if item.OrderID != 10 || item.ID != int64(100+i) {
			t.Fatalf("unexpected item %d: %+v", i, item)
		}
	}
	if order.Items[0].OrderID != 0 {
		t.Fatal("caller items must not be mutated")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryCreateWithStockConflict(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE products SET quantity_in_stock").WithArgs(int64(3), 2).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE products SET quantity_in_stock").WithArgs(int64(4), 2).WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	_, err := storage.Orders().CreateWithStock(context.Background(), sampleOrder())
	if !errors.Is(err, domainErrors.ErrStockConflict) {
		t.Fatalf("expected stock conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryCreateWithStockDuplicateNumber(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE products SET quantity_in_stock").WithArgs(int64(3), 2).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE products SET quantity_in_stock").WithArgs(int64(4), 2).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("1", model.OrderStatusAwaitingDelivery, int64(500), int64(5700), pgxmockv3.AnyArg(), int64(1), int64(2)).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})
	mock.ExpectRollback()

	_, err := storage.Orders().CreateWithStock(context.Background(), sampleOrder())
	if !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryCreateWithStockFailures(t *testing.T) {
	t.Run("decrement error", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE products SET quantity_in_stock").WithArgs(int64(3), 2).WillReturnError(errors.New("boom"))
		mock.ExpectRollback()

		if _, err := storage.Orders().CreateWithStock(context.Background(), sampleOrder()); err == nil {
			t.Fatal("expected error")
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("expectations not met: %v", err)
		}
	})

	t.Run("item insert error", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		defer mock.Close()
		now := time.Now().UTC()
		first := sampleOrder().Items[0]

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE products SET quantity_in_stock").WithArgs(int64(3), 2).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
		mock.ExpectExec("UPDATE products SET quantity_in_stock").WithArgs(int64(4), 2).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
		mock.ExpectQuery("INSERT INTO orders").
			WithArgs("1", model.OrderStatusAwaitingDelivery, int64(500), int64(5700), pgxmockv3.AnyArg(), int64(1), int64(2)).
			WillReturnRows(pgxmockv3.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(10), now, now))
		mock.ExpectQuery("INSERT INTO order_items").
			WithArgs(int64(10), first.ProductID, first.Quantity, first.UnitPrice).
			WillReturnError(errors.New("fk violation"))
		mock.ExpectRollback()

		if _, err := storage.Orders().CreateWithStock(context.Background(), sampleOrder()); err == nil {
			t.Fatal("expected error")
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("expectations not met: %v", err)
		}
	})
}

func TestOrderRepositoryGetByID(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	now := time.Now().UTC()
	coupon := "SPRING"

	mock.ExpectQuery("FROM orders WHERE id=").
		WithArgs(int64(10)).
		WillReturnRows(pgxmockv3.NewRows(orderRowColumns).
			AddRow(int64(10), "1", model.OrderStatusAwaitingDelivery, int64(500), int64(2500), &coupon, int64(1), int64(2), now, now))
	mock.ExpectQuery("FROM order_items WHERE order_id = ANY").
		WithArgs([]int64{10}).
		WillReturnRows(pgxmockv3.NewRows(itemRowColumns).AddRow(int64(100), int64(10), int64(3), 2, int64(1000)))

	order, err := storage.Orders().GetByID(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Number != "1" || order.Status != model.OrderStatusAwaitingDelivery {
		t.Fatalf("unexpected order: %+v", order)
	}
	if order.Coupon == nil || *order.Coupon != "SPRING" {
		t.Fatalf("unexpected coupon: %v", order.Coupon)
	}
	if len(order.Items) != 1 || order.Items[0].Subtotal() != 2000 {
		t.Fatalf("unexpected items: %+v", order.Items)
	}

	mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(11)).WillReturnError(pgx.ErrNoRows)
	if _, err := storage.Orders().GetByID(context.Background(), 11); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryGetByNumber(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	now := time.Now().UTC()
	coupon := ""

	mock.ExpectQuery("FROM orders WHERE order_number=").
		WithArgs("7").
		WillReturnRows(pgxmockv3.NewRows(orderRowColumns).
			AddRow(int64(7), "7", model.OrderStatusAwaitingDelivery, int64(0), int64(100), &coupon, int64(1), int64(2), now, now))
	mock.ExpectQuery("FROM order_items WHERE order_id = ANY").
		WithArgs([]int64{7}).
		WillReturnError(errors.New("items failed"))

	if _, err := storage.Orders().GetByNumber(context.Background(), "7"); err == nil {
		t.Fatal("expected items error")
	}

	mock.ExpectQuery("FROM orders WHERE order_number=").WithArgs("8").WillReturnError(pgx.ErrNoRows)
	if _, err := storage.Orders().GetByNumber(context.Background(), "8"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryListByUser(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	now := time.Now().UTC()
	coupon := ""

	mock.ExpectQuery("FROM orders WHERE user_id=").
		WithArgs(int64(1)).
		WillReturnRows(pgxmockv3.NewRows(orderRowColumns).
			AddRow(int64(2), "2", model.OrderStatusAwaitingDelivery, int64(0), int64(300), &coupon, int64(1), int64(2), now, now).
			AddRow(int64(1), "1", model.OrderStatusDelivered, int64(0), int64(100), &coupon, int64(1), int64(2), now.Add(-time.Hour), now))
	mock.ExpectQuery("FROM order_items WHERE order_id = ANY").
		WithArgs([]int64{2, 1}).
		WillReturnRows(pgxmockv3.NewRows(itemRowColumns).
			AddRow(int64(10), int64(1), int64(3), 1, int64(100)).
			AddRow(int64(11), int64(2), int64(3), 3, int64(100)))

	orders, err := storage.Orders().ListByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 || orders[0].ID != 2 {
		t.Fatalf("unexpected orders: %+v", orders)
	}
	if len(orders[0].Items) != 1 || orders[0].Items[0].Quantity != 3 {
		t.Fatalf("items attached to wrong order: %+v", orders[0].Items)
	}
	if len(orders[1].Items) != 1 || orders[1].Items[0].ID != 10 {
		t.Fatalf("items attached to wrong order: %+v", orders[1].Items)
	}

	mock.ExpectQuery("FROM orders WHERE user_id=").
		WithArgs(int64(2)).
		WillReturnRows(pgxmockv3.NewRows(orderRowColumns))
	empty, err := storage.Orders().ListByUser(context.Background(), 2)
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected no orders, got %v err %v", empty, err)
	}

	mock.ExpectQuery("FROM orders WHERE user_id=").WithArgs(int64(3)).WillReturnError(errors.New("boom"))
	if _, err := storage.Orders().ListByUser(context.Background(), 3); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}

	failing := &Storage{pool: &rowsErrorPool{rows: &errorRows{err: errors.New("rows")}}}
	if _, err := failing.Orders().ListByUser(context.Background(), 1); err == nil {
		t.Fatal("expected rows error")
	}
}
