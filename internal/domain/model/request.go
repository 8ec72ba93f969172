package model

// OrderLine is one requested cart line.
type OrderLine struct {
	ProductID int64
	Quantity  int
}

// OrderRequest carries everything needed to place an order for UserID.
type OrderRequest struct {
	UserID        int64
	AddressID     int64
	Items         []OrderLine
	ShippingCosts int64
	Coupon        *string
	CardNumber    string
}

// Registration holds sign-up data.
type Registration struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}
