package model

import "time"

// User represents a registered customer.
type User struct {
	ID           int64
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName is used as the greeting in outgoing emails.
func (u User) DisplayName() string {
	if u.FirstName == "" {
		return u.Email
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
