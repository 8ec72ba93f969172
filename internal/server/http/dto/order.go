package dto

import "time"

// PlaceOrderRequest describes checkout payload. Money fields are cents.
type PlaceOrderRequest struct {
	AddressID     int64              `json:"addressId"`
	Items         []OrderItemRequest `json:"items"`
	ShippingCosts int64              `json:"shippingCosts"`
	Coupon        *string            `json:"coupon,omitempty"`
	PaymentInfo   PaymentInfo        `json:"paymentInfo"`
}

type OrderItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type PaymentInfo struct {
	CardNumber string `json:"cardNumber"`
}

// OrderResponse represents a placed order.
type OrderResponse struct {
	ID            int64               `json:"id"`
	Number        string              `json:"orderNumber"`
	Status        string              `json:"status"`
	ShippingCosts int64               `json:"shippingCosts"`
	Total         int64               `json:"total"`
	Coupon        *string             `json:"coupon,omitempty"`
	AddressID     int64               `json:"addressId"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"createdAt"`
}

type OrderItemResponse struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unitPrice"`
}

type OrderEnvelope struct {
	Success bool          `json:"success"`
	Order   OrderResponse `json:"order"`
}

type OrdersEnvelope struct {
	Success bool            `json:"success"`
	Orders  []OrderResponse `json:"orders"`
}
