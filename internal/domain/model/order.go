package model

import "time"

// OrderStatus describes fulfilment lifecycle.
type OrderStatus string

const (
	OrderStatusAwaitingPayment  OrderStatus = "AWAITING_PAYMENT"
	OrderStatusAwaitingDelivery OrderStatus = "AWAITING_DELIVERY"
	OrderStatusDelivered        OrderStatus = "DELIVERED"
	OrderStatusCancelled        OrderStatus = "CANCELLED"
)

// Order is a placed purchase. Money fields are minor currency units.
type Order struct {
	ID            int64
	Number        string
	Status        OrderStatus
	ShippingCosts int64
	Total         int64
	Coupon        *string
	UserID        int64
	AddressID     int64
	Items         []OrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem is a single order line. UnitPrice snapshots the product price at placement.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
	UnitPrice int64
}

// Subtotal returns UnitPrice multiplied by Quantity.
func (i OrderItem) Subtotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}
