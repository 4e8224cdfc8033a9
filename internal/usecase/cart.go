package usecase

import (
	"context"
	"errors"
	"log/slog"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// CartUseCase mutates the open order of a user.
type CartUseCase struct {
	store  repository.Store
	logger *slog.Logger
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(store repository.Store, logger *slog.Logger) *CartUseCase {
	return &CartUseCase{store: store, logger: logger}
}

// AddItem puts one more unit of the item into the open order, creating the order when missing.
func (u *CartUseCase) AddItem(ctx context.Context, userID int64, slug string) (*model.CartResult, error) {
	u.logger.Debug("add to cart started", "user_id", userID, "slug", slug)

	item, err := findItem(ctx, u.store.Items(), slug)
	if err != nil {
		u.logger.Error("add to cart failed", "user_id", userID, "slug", slug, "error", err)
		return nil, err
	}

	result := &model.CartResult{Item: *item}
	err = u.store.Atomic(ctx, func(f repository.Factory) error {
		order, _, err := f.Orders().CreateOpen(ctx, userID)
		if err != nil {
			return err
		}
		orderItem, _, err := f.OrderItems().GetOrCreate(ctx, userID, item.ID)
		if err != nil {
			return err
		}

		if orderItem.OrderID == order.ID {
			result.Outcome = model.CartQuantityUpdated
			result.Quantity = orderItem.Quantity + 1
			return f.OrderItems().SetQuantity(ctx, orderItem.ID, result.Quantity)
		}
		result.Outcome = model.CartItemAdded
		result.Quantity = orderItem.Quantity
		return f.OrderItems().Attach(ctx, orderItem.ID, order.ID)
	})
	if err != nil {
		u.logger.Error("add to cart failed", "user_id", userID, "slug", slug, "error", err)
		return nil, err
	}

	u.logger.Debug("add to cart finished", "user_id", userID, "slug", slug, "outcome", result.Outcome.String())
	return result, nil
}

// RemoveItem detaches the item from the open order whatever its quantity.
func (u *CartUseCase) RemoveItem(ctx context.Context, userID int64, slug string) (*model.CartResult, error) {
	return u.remove(ctx, userID, slug, false)
}

// RemoveSingleItem decrements the quantity and detaches the item at quantity one.
func (u *CartUseCase) RemoveSingleItem(ctx context.Context, userID int64, slug string) (*model.CartResult, error) {
	return u.remove(ctx, userID, slug, true)
}

func (u *CartUseCase) remove(ctx context.Context, userID int64, slug string, single bool) (*model.CartResult, error) {
	u.logger.Debug("remove from cart started", "user_id", userID, "slug", slug, "single", single)

	item, err := findItem(ctx, u.store.Items(), slug)
	if err != nil {
		u.logger.Error("remove from cart failed", "user_id", userID, "slug", slug, "error", err)
		return nil, err
	}

	result := &model.CartResult{Item: *item}
	err = u.store.Atomic(ctx, func(f repository.Factory) error {
		order, err := lockOpenOrder(ctx, f, userID)
		if errors.Is(err, domainErrors.ErrNoActiveOrder) {
			result.Outcome = model.CartNoActiveOrder
			return nil
		}
		if err != nil {
			return err
		}

		orderItem, err := f.OrderItems().FindOpen(ctx, userID, item.ID)
		if errors.Is(err, domainErrors.ErrNotFound) || (err == nil && orderItem.OrderID != order.ID) {
			result.Outcome = model.CartItemNotInCart
			return nil
		}
		if err != nil {
			return err
		}

		if single && orderItem.Quantity > 1 {
			result.Outcome = model.CartQuantityUpdated
			result.Quantity = orderItem.Quantity - 1
			return f.OrderItems().SetQuantity(ctx, orderItem.ID, result.Quantity)
		}
		if single {
			result.Outcome = model.CartQuantityUpdated
		} else {
			result.Outcome = model.CartItemRemoved
		}
		return f.OrderItems().Delete(ctx, orderItem.ID)
	})
	if err != nil {
		u.logger.Error("remove from cart failed", "user_id", userID, "slug", slug, "error", err)
		return nil, err
	}

	u.logger.Debug("remove from cart finished", "user_id", userID, "slug", slug, "outcome", result.Outcome.String())
	return result, nil
}

// Summary returns the open order with items, coupon and address.
func (u *CartUseCase) Summary(ctx context.Context, userID int64) (*model.Order, error) {
	u.logger.Debug("order summary started", "user_id", userID)
	order, err := openOrder(ctx, u.store, userID)
	if err != nil {
		u.logger.Error("order summary failed", "user_id", userID, "error", err)
		return nil, err
	}
	u.logger.Debug("order summary finished", "user_id", userID, "order_id", order.ID)
	return order, nil
}

// History returns completed orders of the user, newest first.
func (u *CartUseCase) History(ctx context.Context, userID int64) ([]model.Order, error) {
	orders, err := u.store.Orders().ListCompleted(ctx, userID)
	if err != nil {
		u.logger.Error("order history failed", "user_id", userID, "error", err)
		return nil, err
	}
	for i := range orders {
		if err := loadOrder(ctx, u.store, &orders[i]); err != nil {
			u.logger.Error("order history failed", "user_id", userID, "order_id", orders[i].ID, "error", err)
			return nil, err
		}
	}
	return orders, nil
}
