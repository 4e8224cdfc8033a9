package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/storefront/internal/config"
	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// EventChargeSucceeded is the gateway event completing an order.
const EventChargeSucceeded = "charge.succeeded"

// Gateway is the payment provider used to charge orders.
type Gateway interface {
	CreateCustomer(ctx context.Context, email, description, source string) (string, error)
	CreateCharge(ctx context.Context, req model.ChargeRequest) (*model.Charge, error)
	RetrieveCharge(ctx context.Context, id string) (*model.Charge, error)
	ParseEvent(payload []byte, signature string) (*model.GatewayEvent, error)
}

// PaymentUseCase charges open orders and finalizes them.
type PaymentUseCase struct {
	store       repository.Store
	gateway     Gateway
	currency    string
	description string
	logger      *slog.Logger

	now            func() time.Time
	idempotencyKey func() string
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(store repository.Store, gateway Gateway, cfg *config.Config, logger *slog.Logger) *PaymentUseCase {
	return &PaymentUseCase{
		store:          store,
		gateway:        gateway,
		currency:       cfg.Currency,
		description:    cfg.ChargeDescription,
		logger:         logger,
		now:            time.Now,
		idempotencyKey: uuid.NewString,
	}
}

// Page returns the open order for the payment confirmation page.
func (u *PaymentUseCase) Page(ctx context.Context, userID int64, option string) (*model.Order, error) {
	u.logger.Debug("payment page started", "user_id", userID, "option", option)
	if option != StripeRoute {
		return nil, domainErrors.ErrInvalidPaymentOption
	}
	order, err := openOrder(ctx, u.store, userID)
	if err != nil {
		u.logger.Error("payment page failed", "user_id", userID, "error", err)
		return nil, err
	}
	if order.Address == nil {
		return nil, domainErrors.ErrAddressRequired
	}
	return order, nil
}

// Pay charges the open order total through the gateway and completes the order.
// Gateway failures are returned as *errors.PaymentError and leave the order open.
func (u *PaymentUseCase) Pay(ctx context.Context, userID int64, option, source string) (*model.Payment, error) {
	u.logger.Debug("payment started", "user_id", userID, "option", option)
	if option != StripeRoute {
		return nil, domainErrors.ErrInvalidPaymentOption
	}

	user, err := u.store.Users().GetByID(ctx, userID)
	if err != nil {
		u.logger.Error("payment failed", "user_id", userID, "error", err)
		return nil, err
	}
	order, err := openOrder(ctx, u.store, userID)
	if err != nil {
		u.logger.Error("payment failed", "user_id", userID, "error", err)
		return nil, err
	}
	if order.Address == nil {
		return nil, domainErrors.ErrAddressRequired
	}
	if len(order.Items) == 0 {
		return nil, domainErrors.ErrEmptyOrder
	}
	amount := model.MinorUnits(order.Total())
	if amount <= 0 {
		u.logger.Info("nothing to charge", "user_id", userID, "order_id", order.ID)
		return nil, domainErrors.ErrNothingToCharge
	}

	customerID, err := u.gateway.CreateCustomer(ctx, user.Email, user.Login, source)
	if err != nil {
		u.logger.Error("create customer failed", "user_id", userID, "order_id", order.ID, "error", err)
		return nil, err
	}
	charge, err := u.gateway.CreateCharge(ctx, model.ChargeRequest{
		CustomerID:     customerID,
		Amount:         amount,
		Currency:       u.currency,
		Description:    u.description,
		OrderID:        order.ID,
		UserID:         userID,
		IdempotencyKey: u.idempotencyKey(),
	})
	if err != nil {
		u.logger.Error("create charge failed", "user_id", userID, "order_id", order.ID, "error", err)
		return nil, err
	}

	payment, err := u.finalize(ctx, order.ID, userID, charge.ID, charge.Amount)
	if err != nil {
		u.logRefundable(err, order.ID, charge.ID, charge.Amount)
		u.logger.Error("finalize order failed", "user_id", userID, "order_id", order.ID, "charge_id", charge.ID, "error", err)
		return nil, err
	}
	u.logger.Debug("payment finished", "user_id", userID, "order_id", order.ID, "payment_id", payment.ID)
	return payment, nil
}

// Complete records a charge made by the client and completes the order.
// The charge must be paid, belong to the order and match its total.
func (u *PaymentUseCase) Complete(ctx context.Context, userID, orderID int64, chargeID string) (*model.Payment, error) {
	u.logger.Debug("payment complete started", "user_id", userID, "order_id", orderID)

	existing, err := u.store.Payments().GetByChargeID(ctx, chargeID)
	if err == nil {
		if existing.UserID != userID {
			return nil, domainErrors.ErrPaymentMismatch
		}
		return existing, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		u.logger.Error("payment complete failed", "user_id", userID, "error", err)
		return nil, err
	}

	order, err := openOrder(ctx, u.store, userID)
	if err != nil {
		u.logger.Error("payment complete failed", "user_id", userID, "error", err)
		return nil, err
	}
	if order.ID != orderID {
		return nil, domainErrors.ErrNoActiveOrder
	}
	charge, err := u.gateway.RetrieveCharge(ctx, chargeID)
	if err != nil {
		u.logger.Error("retrieve charge failed", "user_id", userID, "charge_id", chargeID, "error", err)
		return nil, err
	}
	if !charge.Paid || charge.OrderID != order.ID || charge.Amount != model.MinorUnits(order.Total()) {
		u.logger.Error("charge does not match order", "order_id", order.ID, "charge_id", chargeID,
			"paid", charge.Paid, "charge_order_id", charge.OrderID, "amount", charge.Amount)
		return nil, domainErrors.ErrPaymentMismatch
	}

	payment, err := u.finalize(ctx, order.ID, userID, chargeID, charge.Amount)
	if err != nil {
		u.logRefundable(err, order.ID, chargeID, charge.Amount)
		u.logger.Error("payment complete failed", "user_id", userID, "order_id", orderID, "error", err)
		return nil, err
	}
	return payment, nil
}

// HandleEvent verifies a gateway webhook and completes the order of a succeeded charge.
// Events for orders that are already completed are acknowledged without changes.
func (u *PaymentUseCase) HandleEvent(ctx context.Context, payload []byte, signature string) error {
	event, err := u.gateway.ParseEvent(payload, signature)
	if err != nil {
		u.logger.Warn("rejected gateway event", "error", err)
		return err
	}
	if event.Type != EventChargeSucceeded || event.Charge == nil {
		u.logger.Debug("ignoring gateway event", "event_id", event.ID, "type", event.Type)
		return nil
	}
	charge := event.Charge
	if charge.OrderID == 0 {
		u.logger.Warn("charge without order reference", "event_id", event.ID, "charge_id", charge.ID)
		return nil
	}

	_, err = u.finalize(ctx, charge.OrderID, 0, charge.ID, charge.Amount)
	if errors.Is(err, domainErrors.ErrNoActiveOrder) {
		u.logger.Info("order already completed", "event_id", event.ID, "order_id", charge.OrderID, "charge_id", charge.ID)
		return nil
	}
	if errors.Is(err, domainErrors.ErrPaymentMismatch) {
		// Redelivery cannot fix a changed order, so the event is acknowledged.
		u.logRefundable(err, charge.OrderID, charge.ID, charge.Amount)
		return nil
	}
	if err != nil {
		u.logger.Error("handle gateway event failed", "event_id", event.ID, "order_id", charge.OrderID, "error", err)
		return err
	}
	u.logger.Debug("gateway event processed", "event_id", event.ID, "order_id", charge.OrderID)
	return nil
}

// finalize records the payment and completes the order in one transaction.
// A zero userID accepts any owner. A charge recorded before returns its payment.
// The locked order must still total exactly the charged cents, otherwise the
// order stays open and ErrPaymentMismatch is returned.
func (u *PaymentUseCase) finalize(ctx context.Context, orderID, userID int64, chargeID string, chargedCents int64) (*model.Payment, error) {
	var payment *model.Payment
	err := u.store.Atomic(ctx, func(f repository.Factory) error {
		order, err := f.Orders().LockByID(ctx, orderID)
		if errors.Is(err, domainErrors.ErrNotFound) {
			return domainErrors.ErrNoActiveOrder
		}
		if err != nil {
			return err
		}
		if userID != 0 && order.UserID != userID {
			return domainErrors.ErrNoActiveOrder
		}

		existing, err := f.Payments().GetByChargeID(ctx, chargeID)
		if err == nil {
			payment = existing
			return nil
		}
		if !errors.Is(err, domainErrors.ErrNotFound) {
			return err
		}
		if order.Ordered {
			return domainErrors.ErrNoActiveOrder
		}
		if err := loadOrder(ctx, f, order); err != nil {
			return err
		}
		if total := model.MinorUnits(order.Total()); total != chargedCents {
			return fmt.Errorf("%w: order %d totals %d cents, charged %d", domainErrors.ErrPaymentMismatch, order.ID, total, chargedCents)
		}

		payment = &model.Payment{UserID: order.UserID, ChargeID: chargeID, Amount: model.FromMinorUnits(chargedCents), Timestamp: u.now()}
		if err := f.Payments().Create(ctx, payment); err != nil {
			return err
		}
		return f.Orders().Complete(ctx, order.ID, payment.ID, payment.Timestamp)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// logRefundable flags a charge that was taken but could not complete its order.
func (u *PaymentUseCase) logRefundable(err error, orderID int64, chargeID string, cents int64) {
	if !errors.Is(err, domainErrors.ErrPaymentMismatch) {
		return
	}
	u.logger.Error("charge does not cover order, refund required",
		"order_id", orderID, "charge_id", chargeID, "charged_cents", cents, "error", err)
}
