package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// CouponUseCase attaches discount coupons to the open order.
type CouponUseCase struct {
	store  repository.Store
	logger *slog.Logger
}

// NewCouponUseCase constructs CouponUseCase.
func NewCouponUseCase(store repository.Store, logger *slog.Logger) *CouponUseCase {
	return &CouponUseCase{store: store, logger: logger}
}

// Apply attaches the coupon with the given code, replacing any previous coupon.
func (u *CouponUseCase) Apply(ctx context.Context, userID int64, code string) (*model.Coupon, error) {
	u.logger.Debug("apply coupon started", "user_id", userID)

	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domainErrors.ErrInvalidCouponCode
	}

	var coupon *model.Coupon
	err := u.store.Atomic(ctx, func(f repository.Factory) error {
		order, err := lockOpenOrder(ctx, f, userID)
		if err != nil {
			return err
		}
		coupon, err = f.Coupons().GetByCode(ctx, code)
		if errors.Is(err, domainErrors.ErrNotFound) {
			return domainErrors.ErrCouponNotFound
		}
		if err != nil {
			return err
		}
		return f.Orders().SetCoupon(ctx, order.ID, coupon.ID)
	})
	if err != nil {
		u.logger.Error("apply coupon failed", "user_id", userID, "code", code, "error", err)
		return nil, err
	}

	u.logger.Debug("apply coupon finished", "user_id", userID, "coupon_id", coupon.ID)
	return coupon, nil
}
