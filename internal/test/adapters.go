package test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// GatewayStub emulates the payment gateway.
type GatewayStub struct {
	CustomerFn func(context.Context, string, string, string) (string, error)
	ChargeFn   func(context.Context, model.ChargeRequest) (*model.Charge, error)
	RetrieveFn func(context.Context, string) (*model.Charge, error)
	ParseFn    func([]byte, string) (*model.GatewayEvent, error)

	mu        sync.Mutex
	Customers []string
	Charges   []model.ChargeRequest
}

// CreateCustomer records the customer and returns a fixed id.
func (g *GatewayStub) CreateCustomer(ctx context.Context, email, description, source string) (string, error) {
	g.mu.Lock()
	g.Customers = append(g.Customers, email)
	g.mu.Unlock()
	if g.CustomerFn != nil {
		return g.CustomerFn(ctx, email, description, source)
	}
	return "cus_test", nil
}

// CreateCharge records the request and returns a paid charge.
func (g *GatewayStub) CreateCharge(ctx context.Context, req model.ChargeRequest) (*model.Charge, error) {
	g.mu.Lock()
	g.Charges = append(g.Charges, req)
	n := len(g.Charges)
	g.mu.Unlock()
	if g.ChargeFn != nil {
		return g.ChargeFn(ctx, req)
	}
	return &model.Charge{
		ID:       fmt.Sprintf("ch_%d", n),
		Amount:   req.Amount,
		Currency: req.Currency,
		Paid:     true,
		OrderID:  req.OrderID,
		UserID:   req.UserID,
	}, nil
}

// RetrieveCharge delegates to RetrieveFn.
func (g *GatewayStub) RetrieveCharge(ctx context.Context, id string) (*model.Charge, error) {
	if g.RetrieveFn != nil {
		return g.RetrieveFn(ctx, id)
	}
	return nil, errors.New("charge not configured")
}

// ParseEvent delegates to ParseFn.
func (g *GatewayStub) ParseEvent(payload []byte, signature string) (*model.GatewayEvent, error) {
	if g.ParseFn != nil {
		return g.ParseFn(payload, signature)
	}
	return nil, errors.New("event not configured")
}

// ChargeRequests returns a copy of recorded charge requests.
func (g *GatewayStub) ChargeRequests() []model.ChargeRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]model.ChargeRequest(nil), g.Charges...)
}

// NotifierStub records queued notifications.
type NotifierStub struct {
	Err error

	mu   sync.Mutex
	Sent []model.Notification
}

// Notify stores the notification unless Err is set.
func (n *NotifierStub) Notify(msg model.Notification) error {
	if n.Err != nil {
		return n.Err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Sent = append(n.Sent, msg)
	return nil
}

// Notifications returns a copy of recorded notifications.
func (n *NotifierStub) Notifications() []model.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]model.Notification(nil), n.Sent...)
}

// SenderStub delivers mail into a channel.
type SenderStub struct {
	SendFn    func(context.Context, model.Notification) error
	Delivered chan model.Notification
}

// Send forwards the message to Delivered when it is set.
func (s *SenderStub) Send(ctx context.Context, msg model.Notification) error {
	if s.SendFn != nil {
		if err := s.SendFn(ctx, msg); err != nil {
			return err
		}
	}
	if s.Delivered != nil {
		select {
		case s.Delivered <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// LimiterStub answers rate limit checks and records resets.
type LimiterStub struct {
	AllowFn func(context.Context, string) (bool, error)
	Denied  bool
	Err     error

	mu     sync.Mutex
	Resets []string
}

// Allow reports whether the key may proceed.
func (l *LimiterStub) Allow(ctx context.Context, key string) (bool, error) {
	if l.AllowFn != nil {
		return l.AllowFn(ctx, key)
	}
	if l.Err != nil {
		return false, l.Err
	}
	return !l.Denied, nil
}

// Reset records the key.
func (l *LimiterStub) Reset(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Resets = append(l.Resets, key)
	return nil
}
