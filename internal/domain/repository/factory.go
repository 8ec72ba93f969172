package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Addresses() AddressRepository
	Products() ProductRepository
	Orders() OrderRepository
	PasswordResets() PasswordResetRepository
}
