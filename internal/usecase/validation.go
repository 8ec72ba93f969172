package usecase

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

const minPasswordLength = 6

// ValidatePassword requires at least six characters with one letter and one digit.
func ValidatePassword(password string) bool {
	if len([]rune(password)) < minPasswordLength {
		return false
	}

	var letter, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}

// ValidateEmail accepts a bare address such as user@example.com.
func ValidateEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email && strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@")+1:], ".")
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeCardNumber drops all whitespace from a card number.
func NormalizeCardNumber(number string) string {
	return strings.Join(strings.Fields(number), "")
}

func validatePlaceOrder(in model.OrderRequest) error {
	verr := &domainErrors.ValidationError{}
	if in.AddressID <= 0 {
		verr.Add("addressId", "must be a positive id")
	}
	if in.ShippingCosts < 0 {
		verr.Add("shippingCosts", "must not be negative")
	}
	if len(in.Items) == 0 {
		verr.Add("items", "must contain at least one item")
	}
	for i, item := range in.Items {
		if item.ProductID <= 0 {
			verr.Add(fmt.Sprintf("items[%d].productId", i), "must be a positive id")
		}
		if item.Quantity <= 0 {
			verr.Add(fmt.Sprintf("items[%d].quantity", i), "must be greater than zero")
		}
	}
	if NormalizeCardNumber(in.CardNumber) == "" {
		verr.Add("paymentInfo.cardNumber", "is required")
	}
	return verr.OrNil()
}
