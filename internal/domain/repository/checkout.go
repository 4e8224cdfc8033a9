package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// AddressRepository stores shipping addresses.
type AddressRepository interface {
	Create(ctx context.Context, address *model.Address) error
	ClearDefault(ctx context.Context, userID int64) error
	GetDefault(ctx context.Context, userID int64) (*model.Address, error)
	GetByID(ctx context.Context, id int64) (*model.Address, error)
}

// PaymentRepository records gateway charges.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	GetByChargeID(ctx context.Context, chargeID string) (*model.Payment, error)
}
