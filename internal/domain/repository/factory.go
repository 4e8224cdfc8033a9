package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Items() ItemRepository
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Addresses() AddressRepository
	Payments() PaymentRepository
	Coupons() CouponRepository
}

// Store is a Factory that can run a function against repositories bound to one transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Store interface {
	Factory
	Atomic(ctx context.Context, fn func(Factory) error) error
}
