package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/server/http/flash"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

const paymentRoute = "/payment/:payment_option"

func TestPaymentHandlerPage(t *testing.T) {
	var gotOption string
	facade := testhelpers.PaymentFacadeStub{PageFn: func(_ context.Context, _ int64, option string) (*model.Order, error) {
		gotOption = option
		return testhelpers.SampleOrder(), nil
	}}
	resp := performRoute(t, http.MethodGet, paymentRoute, "/payment/stripe", NewPaymentHandler(facade, newFlashStore(), discardLogger()).Page, withUser, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotOption != "stripe" {
		t.Fatalf("unexpected option %q", gotOption)
	}
	var page dto.PaymentPage
	if err := json.Unmarshal(resp.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Total != "20.00" || page.DisplayCouponForm {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestPaymentHandlerPageFailures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		location string
		want     flash.Message
	}{
		{"bad option", domainErrors.ErrInvalidPaymentOption, checkoutPath, flash.Message{Level: flash.Info, Text: "Invalid payment option selected"}},
		{"no address", domainErrors.ErrAddressRequired, checkoutPath, flash.Message{Level: flash.Warning, Text: "You have not added an address"}},
		{"no order", domainErrors.ErrNoActiveOrder, homePath, flash.Message{Level: flash.Info, Text: "You don't have an active order"}},
		{"internal", errors.New("db down"), homePath, flash.Message{Level: flash.Error, Text: unknownPaymentError}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFlashStore()
			facade := testhelpers.PaymentFacadeStub{PageFn: func(context.Context, int64, string) (*model.Order, error) {
				return nil, tt.err
			}}
			resp := performRoute(t, http.MethodGet, paymentRoute, "/payment/paypal", NewPaymentHandler(facade, store, discardLogger()).Page, withUser, nil, nil)
			assertRedirect(t, resp, store, tt.location, tt.want)
		})
	}
}

func TestPaymentHandlerPay(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		location string
		want     flash.Message
	}{
		{"success", nil, homePath, flash.Message{Level: flash.Success, Text: "Payment was successful"}},
		{"card", &domainErrors.PaymentError{Kind: domainErrors.PaymentErrorCard, Message: "Your card has insufficient funds."}, homePath, flash.Message{Level: flash.Warning, Text: "Your card has insufficient funds."}},
		{"invalid request", &domainErrors.PaymentError{Kind: domainErrors.PaymentErrorInvalidRequest}, homePath, flash.Message{Level: flash.Warning, Text: "Invalid request"}},
		{"authentication", &domainErrors.PaymentError{Kind: domainErrors.PaymentErrorAuthentication}, homePath, flash.Message{Level: flash.Warning, Text: "Authentication error"}},
		{"connection", &domainErrors.PaymentError{Kind: domainErrors.PaymentErrorConnection}, homePath, flash.Message{Level: flash.Warning, Text: "Check your connection"}},
		{"gateway", &domainErrors.PaymentError{Kind: domainErrors.PaymentErrorGateway}, homePath, flash.Message{Level: flash.Warning, Text: "There was an error please try again"}},
		{"unknown kind", &domainErrors.PaymentError{Kind: domainErrors.PaymentErrorUnknown}, homePath, flash.Message{Level: flash.Warning, Text: unknownPaymentError}},
		{"empty cart", domainErrors.ErrEmptyOrder, homePath, flash.Message{Level: flash.Info, Text: "Your cart is empty"}},
		{"zero total", domainErrors.ErrNothingToCharge, checkoutPath, flash.Message{Level: flash.Info, Text: "Your order total is zero, there is nothing to charge"}},
		{"cart changed", fmt.Errorf("finalize: %w", domainErrors.ErrPaymentMismatch), homePath, flash.Message{Level: flash.Error, Text: "Your cart changed during payment, we were notified"}},
		{"no address", domainErrors.ErrAddressRequired, checkoutPath, flash.Message{Level: flash.Warning, Text: "You have not added an address"}},
		{"unexpected", errors.New("finalize failed"), homePath, flash.Message{Level: flash.Error, Text: unknownPaymentError}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFlashStore()
			facade := testhelpers.PaymentFacadeStub{PayFn: func(_ context.Context, userID int64, option, source string) (*model.Payment, error) {
				if userID != 7 || option != "stripe" || source != "tok_visa" {
					t.Fatalf("unexpected arguments %d %q %q", userID, option, source)
				}
				if tt.err != nil {
					return nil, tt.err
				}
				return &model.Payment{ID: 1}, nil
			}}
			body := formBody(map[string]string{"stripeToken": "tok_visa"})
			resp := performRoute(t, http.MethodPost, paymentRoute, "/payment/stripe", NewPaymentHandler(facade, store, discardLogger()).Pay, withUser, body, formHeaders)
			assertRedirect(t, resp, store, tt.location, tt.want)
		})
	}
}

func TestPaymentHandlerPayWithoutToken(t *testing.T) {
	store := newFlashStore()
	facade := testhelpers.PaymentFacadeStub{PayFn: func(context.Context, int64, string, string) (*model.Payment, error) {
		t.Fatal("gateway must not be called without a token")
		return nil, nil
	}}
	resp := performRoute(t, http.MethodPost, paymentRoute, "/payment/stripe", NewPaymentHandler(facade, store, discardLogger()).Pay, withUser, formBody(nil), formHeaders)
	assertRedirect(t, resp, store, homePath, flash.Message{Level: flash.Warning, Text: "Invalid request"})
}

func TestPaymentHandlerComplete(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want flash.Message
	}{
		{"success", nil, flash.Message{Level: flash.Success, Text: "Payment was successful"}},
		{"no order", domainErrors.ErrNoActiveOrder, flash.Message{Level: flash.Info, Text: "You don't have an active order"}},
		{"mismatch", domainErrors.ErrPaymentMismatch, flash.Message{Level: flash.Error, Text: "We could not verify your payment"}},
		{"gateway", &domainErrors.PaymentError{Kind: domainErrors.PaymentErrorConnection}, flash.Message{Level: flash.Warning, Text: "Check your connection"}},
		{"unexpected", errors.New("boom"), flash.Message{Level: flash.Error, Text: unknownPaymentError}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFlashStore()
			facade := testhelpers.PaymentFacadeStub{CompleteFn: func(_ context.Context, userID, orderID int64, chargeID string) (*model.Payment, error) {
				if userID != 7 || orderID != 12 || chargeID != "ch_1" {
					t.Fatalf("unexpected arguments %d %d %q", userID, orderID, chargeID)
				}
				if tt.err != nil {
					return nil, tt.err
				}
				return &model.Payment{ID: 1}, nil
			}}
			body := []byte(`{"orderID": 12, "payID": "ch_1"}`)
			resp := performRequest(t, http.MethodPost, "/payment-complete", NewPaymentHandler(facade, store, discardLogger()).Complete, withUser, body, jsonHeaders)
			assertRedirect(t, resp, store, homePath, tt.want)
		})
	}

	for _, body := range []string{"not json", `{"orderID": 12}`, `{"payID": "ch_1"}`} {
		resp := performRequest(t, http.MethodPost, "/payment-complete", NewPaymentHandler(testhelpers.PaymentFacadeStub{}, newFlashStore(), discardLogger()).Complete, withUser, []byte(body), jsonHeaders)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %d", body, resp.Code)
		}
	}
}

func TestPaymentHandlerWebhook(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"accepted", nil, http.StatusOK},
		{"bad signature", domainErrors.ErrInvalidSignature, http.StatusBadRequest},
		{"retry later", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.PaymentFacadeStub{EventFn: func(_ context.Context, payload []byte, signature string) error {
				if string(payload) != `{"id":"evt_1"}` || signature != "t=1,v1=abc" {
					t.Fatalf("unexpected event %q %q", payload, signature)
				}
				return tt.err
			}}
			headers := map[string]string{"Content-Type": "application/json", signatureHeader: "t=1,v1=abc"}
			resp := performRequest(t, http.MethodPost, "/webhook/stripe", NewPaymentHandler(facade, newFlashStore(), discardLogger()).Webhook, nil, []byte(`{"id":"evt_1"}`), headers)
			if resp.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, resp.Code)
			}
		})
	}

	large := bytes.Repeat([]byte("a"), maxWebhookBody+1)
	resp := performRequest(t, http.MethodPost, "/webhook/stripe", NewPaymentHandler(testhelpers.PaymentFacadeStub{}, newFlashStore(), discardLogger()).Webhook, nil, large, nil)
	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", resp.Code)
	}
}
