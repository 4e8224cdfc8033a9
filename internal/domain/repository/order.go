package repository

import (
	"context"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
// Returned orders carry no items, coupon or address; callers load those separately.
type OrderRepository interface {
	GetOpen(ctx context.Context, userID int64) (*model.Order, error)
	// LockOpen returns the open order locked for the rest of the transaction.
	LockOpen(ctx context.Context, userID int64) (*model.Order, error)
	// CreateOpen returns the open order, creating it when missing. The flag reports creation.
	CreateOpen(ctx context.Context, userID int64) (*model.Order, bool, error)
	LockByID(ctx context.Context, id int64) (*model.Order, error)
	ListCompleted(ctx context.Context, userID int64) ([]model.Order, error)
	SetAddress(ctx context.Context, orderID, addressID int64) error
	SetCoupon(ctx context.Context, orderID, couponID int64) error
	// Complete marks the order and its items ordered.
	Complete(ctx context.Context, orderID, paymentID int64, at time.Time) error
}

// OrderItemRepository manages order items that are not yet ordered.
type OrderItemRepository interface {
	// GetOrCreate returns the open order item of user for item, creating it with quantity 1.
	GetOrCreate(ctx context.Context, userID, itemID int64) (*model.OrderItem, bool, error)
	FindOpen(ctx context.Context, userID, itemID int64) (*model.OrderItem, error)
	ListByOrder(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	Attach(ctx context.Context, orderItemID, orderID int64) error
	SetQuantity(ctx context.Context, orderItemID int64, quantity int) error
	Delete(ctx context.Context, orderItemID int64) error
}
