package model

import "time"

// Product is a purchasable catalog entry. Price is in minor currency units.
type Product struct {
	ID              int64
	Title           string
	Price           int64
	QuantityInStock int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Address is a delivery address owned by a user.
type Address struct {
	ID       int64
	UserID   int64
	FullName string
	Line1    string
	Line2    string
	City     string
	ZipCode  string
	Country  string
	Info     string
}
