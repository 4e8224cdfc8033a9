package app

import (
	"context"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/usecase"
)

// StorefrontFacade is the single entry point HTTP handlers talk to.
type StorefrontFacade struct {
	auth     *usecase.AuthUseCase
	catalog  *usecase.CatalogUseCase
	cart     *usecase.CartUseCase
	checkout *usecase.CheckoutUseCase
	coupons  *usecase.CouponUseCase
	payments *usecase.PaymentUseCase
}

type facadeParams struct {
	fx.In

	Auth     *usecase.AuthUseCase
	Catalog  *usecase.CatalogUseCase
	Cart     *usecase.CartUseCase
	Checkout *usecase.CheckoutUseCase
	Coupons  *usecase.CouponUseCase
	Payments *usecase.PaymentUseCase
}

// NewStorefrontFacade aggregates the use cases.
func NewStorefrontFacade(p facadeParams) *StorefrontFacade {
	return &StorefrontFacade{
		auth:     p.Auth,
		catalog:  p.Catalog,
		cart:     p.Cart,
		checkout: p.Checkout,
		coupons:  p.Coupons,
		payments: p.Payments,
	}
}

func (f *StorefrontFacade) Register(ctx context.Context, login, email, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, email, password)
	return token, err
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *StorefrontFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *StorefrontFacade) Items(ctx context.Context) ([]model.Item, error) {
	return f.catalog.List(ctx)
}

func (f *StorefrontFacade) Product(ctx context.Context, slug string) (*model.Item, error) {
	return f.catalog.Product(ctx, slug)
}

func (f *StorefrontFacade) AddToCart(ctx context.Context, userID int64, slug string) (*model.CartResult, error) {
	return f.cart.AddItem(ctx, userID, slug)
}

func (f *StorefrontFacade) RemoveFromCart(ctx context.Context, userID int64, slug string) (*model.CartResult, error) {
	return f.cart.RemoveItem(ctx, userID, slug)
}

func (f *StorefrontFacade) RemoveSingleItem(ctx context.Context, userID int64, slug string) (*model.CartResult, error) {
	return f.cart.RemoveSingleItem(ctx, userID, slug)
}

func (f *StorefrontFacade) OrderSummary(ctx context.Context, userID int64) (*model.Order, error) {
	return f.cart.Summary(ctx, userID)
}

func (f *StorefrontFacade) OrderHistory(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.cart.History(ctx, userID)
}

func (f *StorefrontFacade) CheckoutForm(ctx context.Context, userID int64) (*model.Order, error) {
	return f.checkout.Form(ctx, userID)
}

func (f *StorefrontFacade) SubmitCheckout(ctx context.Context, userID int64, form model.AddressForm) (string, error) {
	return f.checkout.Submit(ctx, userID, form)
}

func (f *StorefrontFacade) ApplyCoupon(ctx context.Context, userID int64, code string) (*model.Coupon, error) {
	return f.coupons.Apply(ctx, userID, code)
}

func (f *StorefrontFacade) PaymentPage(ctx context.Context, userID int64, option string) (*model.Order, error) {
	return f.payments.Page(ctx, userID, option)
}

func (f *StorefrontFacade) Pay(ctx context.Context, userID int64, option, source string) (*model.Payment, error) {
	return f.payments.Pay(ctx, userID, option, source)
}

func (f *StorefrontFacade) CompletePayment(ctx context.Context, userID, orderID int64, chargeID string) (*model.Payment, error) {
	return f.payments.Complete(ctx, userID, orderID, chargeID)
}

func (f *StorefrontFacade) HandleGatewayEvent(ctx context.Context, payload []byte, signature string) error {
	return f.payments.HandleEvent(ctx, payload, signature)
}
