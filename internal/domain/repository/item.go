package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// ItemRepository gives read access to the catalog.
type ItemRepository interface {
	List(ctx context.Context) ([]model.Item, error)
	GetBySlug(ctx context.Context, slug string) (*model.Item, error)
}

// CouponRepository looks up discount coupons.
type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)
	GetByID(ctx context.Context, id int64) (*model.Coupon, error)
}
