package errors

import (
	"errors"
	"strings"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation failed")

	ErrUserNotFound    = errors.New("user not found")
	ErrAddressNotFound = errors.New("address not found")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrOutOfStock      = errors.New("product out of stock")
	ErrStockConflict   = errors.New("stock changed during order placement")
	ErrPaymentFailed   = errors.New("payment failed")

	ErrMissingEmail       = errors.New("email is required")
	ErrTokenRequired      = errors.New("password reset token is required")
	ErrUserIDRequired     = errors.New("password reset user id is required")
	ErrOngoingRecovery    = errors.New("password recovery already in progress")
	ErrTokenNotFound      = errors.New("password reset token not found")
	ErrBadUserID          = errors.New("bad user id")
	ErrTokenUserMismatch  = errors.New("password reset token and user id do not match")
	ErrTokenExpired       = errors.New("password reset token expired")
	ErrPasswordComplexity = errors.New("password does not meet complexity requirements")
	ErrInvalidEmail       = errors.New("invalid email")
)

// FieldError describes a single rejected input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates field level failures of one input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is reports ErrValidation as the sentinel for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Add records a field failure.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns the error only when at least one field failed.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
