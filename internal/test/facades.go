package test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// AuthFacadeStub provides controllable behaviour for auth endpoints.
type AuthFacadeStub struct {
	RegisterFn     func(ctx context.Context, login, email, password string) (string, error)
	AuthenticateFn func(ctx context.Context, login, password string) (string, error)
	ParseFn        func(token string) (int64, error)
}

// Register delegates to RegisterFn or returns a fixed token.
func (s AuthFacadeStub) Register(ctx context.Context, login, email, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, email, password)
	}
	return "token", nil
}

// Authenticate delegates to AuthenticateFn or returns a fixed token.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token", nil
}

// ParseToken delegates to ParseFn or returns user 1.
func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// SampleItem is the product returned by default stubs.
var SampleItem = model.Item{ID: 1, Title: "Widget", Slug: "widget", Price: decimal.RequireFromString("10.00")}

// SampleOrder returns an open order holding two SampleItem.
func SampleOrder() *model.Order {
	return &model.Order{
		ID:     1,
		UserID: 1,
		Items:  []model.OrderItem{{ID: 1, UserID: 1, ItemID: SampleItem.ID, OrderID: 1, Quantity: 2, Item: SampleItem}},
	}
}

// CatalogFacadeStub simulates catalog queries.
type CatalogFacadeStub struct {
	ItemsFn   func(ctx context.Context) ([]model.Item, error)
	ProductFn func(ctx context.Context, slug string) (*model.Item, error)
}

// Items delegates to ItemsFn or returns SampleItem.
func (s CatalogFacadeStub) Items(ctx context.Context) ([]model.Item, error) {
	if s.ItemsFn != nil {
		return s.ItemsFn(ctx)
	}
	return []model.Item{SampleItem}, nil
}

// Product delegates to ProductFn or returns SampleItem.
func (s CatalogFacadeStub) Product(ctx context.Context, slug string) (*model.Item, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, slug)
	}
	item := SampleItem
	return &item, nil
}

// CartFacadeStub simulates cart operations.
type CartFacadeStub struct {
	AddFn          func(ctx context.Context, userID int64, slug string) (*model.CartResult, error)
	RemoveFn       func(ctx context.Context, userID int64, slug string) (*model.CartResult, error)
	RemoveSingleFn func(ctx context.Context, userID int64, slug string) (*model.CartResult, error)
	SummaryFn      func(ctx context.Context, userID int64) (*model.Order, error)
	HistoryFn      func(ctx context.Context, userID int64) ([]model.Order, error)
}

// AddToCart delegates to AddFn or reports an added item.
func (s CartFacadeStub) AddToCart(ctx context.Context, userID int64, slug string) (*model.CartResult, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, userID, slug)
	}
	return &model.CartResult{Outcome: model.CartItemAdded, Item: SampleItem, Quantity: 1}, nil
}

// RemoveFromCart delegates to RemoveFn or reports a removed item.
func (s CartFacadeStub) RemoveFromCart(ctx context.Context, userID int64, slug string) (*model.CartResult, error) {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, userID, slug)
	}
	return &model.CartResult{Outcome: model.CartItemRemoved, Item: SampleItem}, nil
}

// RemoveSingleItem delegates to RemoveSingleFn or reports an updated quantity.
func (s CartFacadeStub) RemoveSingleItem(ctx context.Context, userID int64, slug string) (*model.CartResult, error) {
	if s.RemoveSingleFn != nil {
		return s.RemoveSingleFn(ctx, userID, slug)
	}
	return &model.CartResult{Outcome: model.CartQuantityUpdated, Item: SampleItem, Quantity: 1}, nil
}

// OrderSummary delegates to SummaryFn or returns SampleOrder.
func (s CartFacadeStub) OrderSummary(ctx context.Context, userID int64) (*model.Order, error) {
	if s.SummaryFn != nil {
		return s.SummaryFn(ctx, userID)
	}
	return SampleOrder(), nil
}

// OrderHistory delegates to HistoryFn or returns no orders.
func (s CartFacadeStub) OrderHistory(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, userID)
	}
	return nil, nil
}

// CheckoutFacadeStub simulates checkout and coupon operations.
type CheckoutFacadeStub struct {
	FormFn   func(ctx context.Context, userID int64) (*model.Order, error)
	SubmitFn func(ctx context.Context, userID int64, form model.AddressForm) (string, error)
	CouponFn func(ctx context.Context, userID int64, code string) (*model.Coupon, error)
}

// CheckoutForm delegates to FormFn or returns SampleOrder.
func (s CheckoutFacadeStub) CheckoutForm(ctx context.Context, userID int64) (*model.Order, error) {
	if s.FormFn != nil {
		return s.FormFn(ctx, userID)
	}
	return SampleOrder(), nil
}

// SubmitCheckout delegates to SubmitFn or routes to stripe.
func (s CheckoutFacadeStub) SubmitCheckout(ctx context.Context, userID int64, form model.AddressForm) (string, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, userID, form)
	}
	return "stripe", nil
}

// ApplyCoupon delegates to CouponFn or returns a coupon with the given code.
func (s CheckoutFacadeStub) ApplyCoupon(ctx context.Context, userID int64, code string) (*model.Coupon, error) {
	if s.CouponFn != nil {
		return s.CouponFn(ctx, userID, code)
	}
	return &model.Coupon{ID: 1, Code: code, Amount: decimal.RequireFromString("5.00")}, nil
}

// PaymentFacadeStub simulates payment operations.
type PaymentFacadeStub struct {
	PageFn     func(ctx context.Context, userID int64, option string) (*model.Order, error)
	PayFn      func(ctx context.Context, userID int64, option, source string) (*model.Payment, error)
	CompleteFn func(ctx context.Context, userID, orderID int64, chargeID string) (*model.Payment, error)
	EventFn    func(ctx context.Context, payload []byte, signature string) error
}

// PaymentPage delegates to PageFn or returns SampleOrder.
func (s PaymentFacadeStub) PaymentPage(ctx context.Context, userID int64, option string) (*model.Order, error) {
	if s.PageFn != nil {
		return s.PageFn(ctx, userID, option)
	}
	return SampleOrder(), nil
}

// Pay delegates to PayFn or returns a payment.
func (s PaymentFacadeStub) Pay(ctx context.Context, userID int64, option, source string) (*model.Payment, error) {
	if s.PayFn != nil {
		return s.PayFn(ctx, userID, option, source)
	}
	return &model.Payment{ID: 1, UserID: userID, ChargeID: "ch_1"}, nil
}

// CompletePayment delegates to CompleteFn or returns a payment.
func (s PaymentFacadeStub) CompletePayment(ctx context.Context, userID, orderID int64, chargeID string) (*model.Payment, error) {
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, userID, orderID, chargeID)
	}
	return &model.Payment{ID: 1, UserID: userID, ChargeID: chargeID}, nil
}

// HandleGatewayEvent delegates to EventFn or accepts the event.
func (s PaymentFacadeStub) HandleGatewayEvent(ctx context.Context, payload []byte, signature string) error {
	if s.EventFn != nil {
		return s.EventFn(ctx, payload, signature)
	}
	return nil
}

// StorefrontFacadeStub composes all facade stubs.
type StorefrontFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	CartFacadeStub
	CheckoutFacadeStub
	PaymentFacadeStub
}
