package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/charge"
	"github.com/stripe/stripe-go/v83/customer"
	"github.com/stripe/stripe-go/v83/webhook"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

const (
	metadataOrderID = "order_id"
	metadataUserID  = "user_id"
)

// Client exposes the payment operations of the storefront.
type Client interface {
	CreateCustomer(ctx context.Context, email, description, source string) (string, error)
	CreateCharge(ctx context.Context, req model.ChargeRequest) (*model.Charge, error)
	RetrieveCharge(ctx context.Context, id string) (*model.Charge, error)
	ParseEvent(payload []byte, signature string) (*model.GatewayEvent, error)
}

// StripeClient implements Client with the Stripe customers and charges API.
type StripeClient struct {
	webhookSecret string
	logger        *slog.Logger

	newCustomer func(*stripe.CustomerParams) (*stripe.Customer, error)
	newCharge   func(*stripe.ChargeParams) (*stripe.Charge, error)
	getCharge   func(string, *stripe.ChargeParams) (*stripe.Charge, error)
}

// NewStripeClient configures the Stripe API key and builds a client.
func NewStripeClient(secretKey, webhookSecret string, logger *slog.Logger) (*StripeClient, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("stripe secret key is empty")
	}
	stripe.Key = secretKey
	return &StripeClient{
		webhookSecret: webhookSecret,
		logger:        logger,
		newCustomer:   customer.New,
		newCharge:     charge.New,
		getCharge:     charge.Get,
	}, nil
}

// CreateCustomer registers a customer paying with the tokenized card source.
func (c *StripeClient) CreateCustomer(ctx context.Context, email, description, source string) (string, error) {
	params := &stripe.CustomerParams{
		Email:       stripe.String(email),
		Description: stripe.String(description),
		Source:      stripe.String(source),
	}
	params.Context = ctx

	cust, err := c.newCustomer(params)
	if err != nil {
		return "", classify(err)
	}
	return cust.ID, nil
}

// CreateCharge charges the customer; the order and user ids travel as metadata.
func (c *StripeClient) CreateCharge(ctx context.Context, req model.ChargeRequest) (*model.Charge, error) {
	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(req.Amount),
		Currency:    stripe.String(req.Currency),
		Customer:    stripe.String(req.CustomerID),
		Description: stripe.String(req.Description),
	}
	params.Context = ctx
	params.AddMetadata(metadataOrderID, strconv.FormatInt(req.OrderID, 10))
	params.AddMetadata(metadataUserID, strconv.FormatInt(req.UserID, 10))
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	ch, err := c.newCharge(params)
	if err != nil {
		return nil, classify(err)
	}
	c.logger.Debug("stripe charge created", slog.String("charge_id", ch.ID), slog.Int64("order_id", req.OrderID))
	return toCharge(ch), nil
}

// RetrieveCharge loads a charge by id.
func (c *StripeClient) RetrieveCharge(ctx context.Context, id string) (*model.Charge, error) {
	params := &stripe.ChargeParams{}
	params.Context = ctx

	ch, err := c.getCharge(id, params)
	if err != nil {
		return nil, classify(err)
	}
	return toCharge(ch), nil
}

// ParseEvent verifies the Stripe-Signature header and decodes charge events.
func (c *StripeClient) ParseEvent(payload []byte, signature string) (*model.GatewayEvent, error) {
	if c.webhookSecret == "" {
		return nil, fmt.Errorf("%w: webhook secret is not configured", domainErrors.ErrInvalidSignature)
	}
	event, err := webhook.ConstructEventWithOptions(payload, signature, c.webhookSecret, webhook.ConstructEventOptions{
		Tolerance:                webhook.DefaultTolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrInvalidSignature, err)
	}

	out := &model.GatewayEvent{ID: event.ID, Type: string(event.Type)}
	if strings.HasPrefix(out.Type, "charge.") && event.Data != nil {
		var ch stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &ch); err != nil {
			return nil, fmt.Errorf("decode charge: %w", err)
		}
		out.Charge = toCharge(&ch)
	}
	return out, nil
}

func toCharge(ch *stripe.Charge) *model.Charge {
	out := &model.Charge{
		ID:       ch.ID,
		Amount:   ch.Amount,
		Currency: string(ch.Currency),
		Paid:     ch.Paid,
	}
	if v, err := strconv.ParseInt(ch.Metadata[metadataOrderID], 10, 64); err == nil {
		out.OrderID = v
	}
	if v, err := strconv.ParseInt(ch.Metadata[metadataUserID], 10, 64); err == nil {
		out.UserID = v
	}
	return out
}

// classify maps Stripe failures onto payment error kinds.
func classify(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		switch {
		case stripeErr.Type == stripe.ErrorTypeCard:
			return &domainErrors.PaymentError{Kind: domainErrors.PaymentErrorCard, Message: stripeErr.Msg, Err: err}
		case stripeErr.HTTPStatusCode == http.StatusUnauthorized:
			return &domainErrors.PaymentError{Kind: domainErrors.PaymentErrorAuthentication, Message: stripeErr.Msg, Err: err}
		case stripeErr.Type == stripe.ErrorTypeInvalidRequest:
			return &domainErrors.PaymentError{Kind: domainErrors.PaymentErrorInvalidRequest, Message: stripeErr.Msg, Err: err}
		default:
			return &domainErrors.PaymentError{Kind: domainErrors.PaymentErrorGateway, Message: stripeErr.Msg, Err: err}
		}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &domainErrors.PaymentError{Kind: domainErrors.PaymentErrorConnection, Message: netErr.Error(), Err: err}
	}
	return &domainErrors.PaymentError{Kind: domainErrors.PaymentErrorUnknown, Message: err.Error(), Err: err}
}
