package handlers

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, email, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// CatalogFacade exposes read-only catalog queries.
type CatalogFacade interface {
	Items(ctx context.Context) ([]model.Item, error)
	Product(ctx context.Context, slug string) (*model.Item, error)
}

// CartFacade mutates and renders the open order.
type CartFacade interface {
	AddToCart(ctx context.Context, userID int64, slug string) (*model.CartResult, error)
	RemoveFromCart(ctx context.Context, userID int64, slug string) (*model.CartResult, error)
	RemoveSingleItem(ctx context.Context, userID int64, slug string) (*model.CartResult, error)
	OrderSummary(ctx context.Context, userID int64) (*model.Order, error)
	OrderHistory(ctx context.Context, userID int64) ([]model.Order, error)
}

// CheckoutFacade captures the shipping address and coupon.
type CheckoutFacade interface {
	CheckoutForm(ctx context.Context, userID int64) (*model.Order, error)
	SubmitCheckout(ctx context.Context, userID int64, form model.AddressForm) (string, error)
	ApplyCoupon(ctx context.Context, userID int64, code string) (*model.Coupon, error)
}

// PaymentFacade charges orders and consumes gateway callbacks.
type PaymentFacade interface {
	PaymentPage(ctx context.Context, userID int64, option string) (*model.Order, error)
	Pay(ctx context.Context, userID int64, option, source string) (*model.Payment, error)
	CompletePayment(ctx context.Context, userID, orderID int64, chargeID string) (*model.Payment, error)
	HandleGatewayEvent(ctx context.Context, payload []byte, signature string) error
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	CatalogFacade
	CartFacade
	CheckoutFacade
	PaymentFacade
}
