package model

import (
	"testing"
	"time"
)

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   OrderStatus
		value string
	}{
		{"awaiting payment", OrderStatusAwaitingPayment, "AWAITING_PAYMENT"},
		{"awaiting delivery", OrderStatusAwaitingDelivery, "AWAITING_DELIVERY"},
		{"delivered", OrderStatusDelivered, "DELIVERED"},
		{"cancelled", OrderStatusCancelled, "CANCELLED"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestOrderItemSubtotal(t *testing.T) {
	item := OrderItem{UnitPrice: 12000, Quantity: 3}
	if got := item.Subtotal(); got != 36000 {
		t.Fatalf("expected 36000, got %d", got)
	}
}

func TestPasswordResetExpiry(t *testing.T) {
	if PasswordResetWindow != 5*time.Hour {
		t.Fatalf("unexpected window %s", PasswordResetWindow)
	}

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	reset := PasswordReset{CreatedAt: created}

	cases := []struct {
		name    string
		now     time.Time
		expired bool
	}{
		{"just created", created, false},
		{"one millisecond before boundary", created.Add(PasswordResetWindow - time.Millisecond), false},
		{"at boundary", created.Add(PasswordResetWindow), false},
		{"one millisecond after boundary", created.Add(PasswordResetWindow + time.Millisecond), true},
		{"one second after boundary", created.Add(PasswordResetWindow + time.Second), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := reset.Expired(tc.now); got != tc.expired {
				t.Fatalf("expected expired=%v, got %v", tc.expired, got)
			}
		})
	}
}

func TestUserDisplayName(t *testing.T) {
	cases := []struct {
		user User
		want string
	}{
		{User{Email: "a@b.c"}, "a@b.c"},
		{User{Email: "a@b.c", FirstName: "Ada"}, "Ada"},
		{User{Email: "a@b.c", FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace"},
	}
	for _, tc := range cases {
		if got := tc.user.DisplayName(); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}
