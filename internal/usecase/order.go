package usecase

import (
	"context"
	"errors"
	"fmt"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// loadOrder fills items, coupon and address of an order.
func loadOrder(ctx context.Context, f repository.Factory, order *model.Order) error {
	items, err := f.OrderItems().ListByOrder(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	order.Items = items

	if order.CouponID != nil {
		coupon, err := f.Coupons().GetByID(ctx, *order.CouponID)
		if err != nil {
			return fmt.Errorf("load coupon: %w", err)
		}
		order.Coupon = coupon
	}
	if order.AddressID != nil {
		address, err := f.Addresses().GetByID(ctx, *order.AddressID)
		if err != nil {
			return fmt.Errorf("load address: %w", err)
		}
		order.Address = address
	}
	return nil
}

// openOrder returns the loaded open order of the user or ErrNoActiveOrder.
func openOrder(ctx context.Context, f repository.Factory, userID int64) (*model.Order, error) {
	order, err := f.Orders().GetOpen(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrNoActiveOrder
		}
		return nil, err
	}
	if err := loadOrder(ctx, f, order); err != nil {
		return nil, err
	}
	return order, nil
}

// lockOpenOrder locks the open order of the user or returns ErrNoActiveOrder.
func lockOpenOrder(ctx context.Context, f repository.Factory, userID int64) (*model.Order, error) {
	order, err := f.Orders().LockOpen(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrNoActiveOrder
		}
		return nil, err
	}
	return order, nil
}
