package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/polkiloo/storefront/internal/config"
	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// StripeOption is the checkout form value selecting the Stripe gateway.
const StripeOption = "S"

// StripeRoute names the payment page for the Stripe gateway.
const StripeRoute = "stripe"

// Notifier queues outgoing mail.
type Notifier interface {
	Notify(msg model.Notification) error
}

// CheckoutUseCase captures the shipping address and payment choice.
type CheckoutUseCase struct {
	store      repository.Store
	notifier   Notifier
	operations string
	logger     *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(store repository.Store, notifier Notifier, cfg *config.Config, logger *slog.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{store: store, notifier: notifier, operations: cfg.OperationsEmail, logger: logger}
}

// Form returns the open order shown next to the checkout form.
func (u *CheckoutUseCase) Form(ctx context.Context, userID int64) (*model.Order, error) {
	u.logger.Debug("checkout form started", "user_id", userID)
	order, err := openOrder(ctx, u.store, userID)
	if err != nil {
		u.logger.Error("checkout form failed", "user_id", userID, "error", err)
		return nil, err
	}
	return order, nil
}

// Submit stores the address on the open order and returns the payment route for the chosen option.
// The address is kept even when the default address or the payment option turn out to be invalid.
func (u *CheckoutUseCase) Submit(ctx context.Context, userID int64, form model.AddressForm) (string, error) {
	u.logger.Debug("checkout submit started", "user_id", userID)

	if !form.Valid() {
		return "", domainErrors.ErrIncompleteAddress
	}

	var (
		orderID   int64
		noDefault bool
	)
	err := u.store.Atomic(ctx, func(f repository.Factory) error {
		order, err := lockOpenOrder(ctx, f, userID)
		if err != nil {
			return err
		}
		orderID = order.ID

		if form.SaveInfo {
			if err := f.Addresses().ClearDefault(ctx, userID); err != nil {
				return err
			}
		}
		address := &model.Address{
			UserID:           userID,
			StreetAddress:    strings.TrimSpace(form.StreetAddress),
			ApartmentAddress: strings.TrimSpace(form.ApartmentAddress),
			Country:          strings.TrimSpace(form.Country),
			Zip:              strings.TrimSpace(form.Zip),
			Default:          form.SaveInfo,
		}
		if err := f.Addresses().Create(ctx, address); err != nil {
			return err
		}
		if err := f.Orders().SetAddress(ctx, order.ID, address.ID); err != nil {
			return err
		}

		if !form.UseDefault {
			return nil
		}
		def, err := f.Addresses().GetDefault(ctx, userID)
		if errors.Is(err, domainErrors.ErrNotFound) {
			noDefault = true
			return nil
		}
		if err != nil {
			return err
		}
		return f.Orders().SetAddress(ctx, order.ID, def.ID)
	})
	if err != nil {
		u.logger.Error("checkout submit failed", "user_id", userID, "error", err)
		return "", err
	}
	if noDefault {
		u.logger.Error("checkout submit failed", "user_id", userID, "error", domainErrors.ErrNoDefaultAddress)
		return "", domainErrors.ErrNoDefaultAddress
	}

	if form.PaymentOption == StripeOption {
		u.logger.Debug("checkout submit finished", "user_id", userID, "order_id", orderID, "payment", StripeRoute)
		return StripeRoute, nil
	}

	u.notifyInvalidOption(userID, orderID, form.PaymentOption)
	return "", domainErrors.ErrInvalidPaymentOption
}

func (u *CheckoutUseCase) notifyInvalidOption(userID, orderID int64, option string) {
	if u.operations == "" {
		u.logger.Debug("operations email not configured, skipping notification", "order_id", orderID)
		return
	}
	msg := model.Notification{
		To:      u.operations,
		Subject: "Invalid payment option",
		Body:    fmt.Sprintf("User %d submitted checkout for order %d with unsupported payment option %q.", userID, orderID, option),
	}
	if err := u.notifier.Notify(msg); err != nil {
		u.logger.Warn("operations notification dropped", "order_id", orderID, "error", err)
	}
}
