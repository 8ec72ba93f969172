package usecase

import "github.com/polkiloo/storefront/internal/domain/model"

// OrderTotal sums item subtotals and shipping in minor units.
func OrderTotal(items []model.OrderItem, shippingCosts int64) int64 {
	total := shippingCosts
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}
