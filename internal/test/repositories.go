package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	mu        sync.Mutex
	Users     map[string]*model.User
	ByID      map[int64]*model.User
	Next      int64
	Err       error
	UpdateErr error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub(users ...model.User) *UserRepositoryStub {
	s := &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
	for _, u := range users {
		u := u
		s.Users[u.Email] = &u
		s.ByID[u.ID] = &u
		if u.ID >= s.Next {
			s.Next = u.ID + 1
		}
	}
	return s
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Users[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user.ID = s.Next
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.Next++
	s.Users[user.Email] = &user
	s.ByID[user.ID] = &user
	out := user
	return &out, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		out := *user
		return &out, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		out := *user
		return &out, nil
	}
	return nil, domainErrors.ErrNotFound
}

// UpdatePassword replaces the stored hash.
func (s *UserRepositoryStub) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

// AddressRepositoryStub serves fixed addresses.
type AddressRepositoryStub struct {
	Addresses map[int64]model.Address
	Err       error
}

// NewAddressRepositoryStub indexes the given addresses by id.
func NewAddressRepositoryStub(addresses ...model.Address) *AddressRepositoryStub {
	s := &AddressRepositoryStub{Addresses: make(map[int64]model.Address)}
	for _, a := range addresses {
		s.Addresses[a.ID] = a
	}
	return s
}

// GetByID returns the address or not found.
func (s *AddressRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Address, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	a, ok := s.Addresses[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &a, nil
}

// ProductRepositoryStub keeps products and their stock in memory.
type ProductRepositoryStub struct {
	mu       sync.Mutex
	Products map[int64]model.Product
	Err      error
}

// NewProductRepositoryStub indexes the given products by id.
func NewProductRepositoryStub(products ...model.Product) *ProductRepositoryStub {
	s := &ProductRepositoryStub{Products: make(map[int64]model.Product)}
	for _, p := range products {
		s.Products[p.ID] = p
	}
	return s
}

// GetByID returns a snapshot of the product or not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.Products[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &p, nil
}

// Stock returns the current stock of a product.
func (s *ProductRepositoryStub) Stock(id int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Products[id].QuantityInStock
}

// OrderRepositoryStub stores orders in memory and decrements stock on the
// linked ProductRepositoryStub atomically with the insert.
type OrderRepositoryStub struct {
	mu       sync.Mutex
	Products *ProductRepositoryStub
	Orders   []model.Order

	CountFn  func(context.Context) (int64, error)
	ExistsFn func(context.Context, string) (bool, error)
	CreateFn func(context.Context, model.Order) (*model.Order, error)

	CreateCalls int
}

// NewOrderRepositoryStub links the order store to products.
func NewOrderRepositoryStub(products *ProductRepositoryStub, orders ...model.Order) *OrderRepositoryStub {
	return &OrderRepositoryStub{Products: products, Orders: orders}
}

// Count returns the number of stored orders.
func (s *OrderRepositoryStub) Count(ctx context.Context) (int64, error) {
	if s.CountFn != nil {
		return s.CountFn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.Orders)), nil
}

// ExistsByNumber reports whether number is taken.
func (s *OrderRepositoryStub) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	if s.ExistsFn != nil {
		return s.ExistsFn(ctx, number)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.Orders {
		if o.Number == number {
			return true, nil
		}
	}
	return false, nil
}

// CreateWithStock checks and decrements stock for all items, then stores the order.
func (s *OrderRepositoryStub) CreateWithStock(ctx context.Context, order model.Order) (*model.Order, error) {
	s.mu.Lock()
	s.CreateCalls++
	s.mu.Unlock()
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.Orders {
		if o.Number == order.Number {
			return nil, domainErrors.ErrAlreadyExists
		}
	}

	if s.Products != nil {
		s.Products.mu.Lock()
		defer s.Products.mu.Unlock()

		demand := make(map[int64]int)
		for _, item := range order.Items {
			demand[item.ProductID] += item.Quantity
		}
		for id, qty := range demand {
			if s.Products.Products[id].QuantityInStock < qty {
				return nil, domainErrors.ErrStockConflict
			}
		}
		for id, qty := range demand {
			p := s.Products.Products[id]
			p.QuantityInStock -= qty
			s.Products.Products[id] = p
		}
	}

	order.ID = int64(len(s.Orders) + 1)
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	order.Items = append([]model.OrderItem(nil), order.Items...)
	for i := range order.Items {
		order.Items[i].ID = int64(i + 1)
		order.Items[i].OrderID = order.ID
	}
	s.Orders = append(s.Orders, order)
	out := order
	return &out, nil
}

// GetByID returns the order or not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.Orders {
		if o.ID == id {
			out := o
			return &out, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByNumber returns the order or not found.
func (s *OrderRepositoryStub) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.Orders {
		if o.Number == number {
			out := o
			return &out, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns the user's orders newest first.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, o := range s.Orders {
		if o.UserID == userID {
			result = append(result, o)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

// PasswordResetRepositoryStub stores reset tokens in memory.
type PasswordResetRepositoryStub struct {
	mu        sync.Mutex
	Resets    []model.PasswordReset
	CreateErr error
	ListErr   error
}

// Create stores reset unless its token is already used.
func (s *PasswordResetRepositoryStub) Create(ctx context.Context, reset model.PasswordReset) (*model.PasswordReset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	for _, r := range s.Resets {
		if r.Token == reset.Token {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	reset.ID = int64(len(s.Resets) + 1)
	s.Resets = append(s.Resets, reset)
	return &reset, nil
}

// GetByToken returns the reset or not found.
func (s *PasswordResetRepositoryStub) GetByToken(ctx context.Context, token string) (*model.PasswordReset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.Resets {
		if r.Token == token {
			out := r
			return &out, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListCreatedSince returns the user's resets created strictly after since.
func (s *PasswordResetRepositoryStub) ListCreatedSince(ctx context.Context, userID int64, since time.Time) ([]model.PasswordReset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	var result []model.PasswordReset
	for _, r := range s.Resets {
		if r.UserID == userID && r.CreatedAt.After(since) {
			result = append(result, r)
		}
	}
	return result, nil
}

var (
	_ repository.UserRepository          = (*UserRepositoryStub)(nil)
	_ repository.AddressRepository       = (*AddressRepositoryStub)(nil)
	_ repository.ProductRepository       = (*ProductRepositoryStub)(nil)
	_ repository.OrderRepository         = (*OrderRepositoryStub)(nil)
	_ repository.PasswordResetRepository = (*PasswordResetRepositoryStub)(nil)
)
