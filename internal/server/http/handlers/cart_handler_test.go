package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/server/http/flash"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func cartResult(outcome model.CartOutcome) func(context.Context, int64, string) (*model.CartResult, error) {
	return func(context.Context, int64, string) (*model.CartResult, error) {
		return &model.CartResult{Outcome: outcome, Item: testhelpers.SampleItem}, nil
	}
}

func TestCartHandlerMutations(t *testing.T) {
	tests := []struct {
		name     string
		outcome  model.CartOutcome
		location string
		want     flash.Message
	}{
		{"added", model.CartItemAdded, orderSummaryPath, flash.Message{Level: flash.Success, Text: "Widget was added to your cart"}},
		{"quantity", model.CartQuantityUpdated, orderSummaryPath, flash.Message{Level: flash.Success, Text: "Widget's quantity was updated"}},
		{"removed", model.CartItemRemoved, orderSummaryPath, flash.Message{Level: flash.Success, Text: "Widget was removed from your cart"}},
		{"not in cart", model.CartItemNotInCart, orderSummaryPath, flash.Message{Level: flash.Info, Text: "Widget was not in your cart"}},
		{"no order", model.CartNoActiveOrder, homePath, flash.Message{Level: flash.Info, Text: "You don't have an active order!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFlashStore()
			handler := NewCartHandler(testhelpers.CartFacadeStub{AddFn: cartResult(tt.outcome)}, store, discardLogger())
			resp := performRoute(t, http.MethodPost, "/add-to-cart/:slug", "/add-to-cart/widget", handler.Add, withUser, nil, nil)
			assertRedirect(t, resp, store, tt.location, tt.want)
		})
	}
}

func TestCartHandlerRoutesToFacade(t *testing.T) {
	var calls []string
	record := func(name string, outcome model.CartOutcome) func(context.Context, int64, string) (*model.CartResult, error) {
		return func(_ context.Context, userID int64, slug string) (*model.CartResult, error) {
			if userID != 7 || slug != "widget" {
				t.Fatalf("unexpected arguments %d %q", userID, slug)
			}
			calls = append(calls, name)
			return &model.CartResult{Outcome: outcome, Item: testhelpers.SampleItem}, nil
		}
	}
	facade := testhelpers.CartFacadeStub{
		AddFn:          record("add", model.CartItemAdded),
		RemoveFn:       record("remove", model.CartItemRemoved),
		RemoveSingleFn: record("single", model.CartQuantityUpdated),
	}
	handler := NewCartHandler(facade, newFlashStore(), discardLogger())

	performRoute(t, http.MethodPost, "/add-to-cart/:slug", "/add-to-cart/widget", handler.Add, withUser, nil, nil)
	performRoute(t, http.MethodPost, "/remove-from-cart/:slug", "/remove-from-cart/widget", handler.Remove, withUser, nil, nil)
	performRoute(t, http.MethodPost, "/remove-item-from-cart/:slug", "/remove-item-from-cart/widget", handler.RemoveSingle, withUser, nil, nil)

	if len(calls) != 3 || calls[0] != "add" || calls[1] != "remove" || calls[2] != "single" {
		t.Fatalf("unexpected calls %v", calls)
	}
}

func TestCartHandlerMutationFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"unknown item", domainErrors.ErrItemNotFound, http.StatusNotFound},
		{"internal", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.CartFacadeStub{RemoveFn: func(context.Context, int64, string) (*model.CartResult, error) {
				return nil, tt.err
			}}
			handler := NewCartHandler(facade, newFlashStore(), discardLogger())
			resp := performRoute(t, http.MethodPost, "/remove-from-cart/:slug", "/remove-from-cart/widget", handler.Remove, withUser, nil, nil)
			if resp.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestCartHandlerSummary(t *testing.T) {
	handler := NewCartHandler(testhelpers.CartFacadeStub{}, newFlashStore(), discardLogger())
	resp := performRequest(t, http.MethodGet, orderSummaryPath, handler.Summary, withUser, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var page dto.OrderSummaryPage
	if err := json.Unmarshal(resp.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Order.Total != "20.00" || len(page.Order.Items) != 1 || page.Order.Items[0].Quantity != 2 {
		t.Fatalf("unexpected order %+v", page.Order)
	}
}

func TestCartHandlerSummaryWithoutOrder(t *testing.T) {
	store := newFlashStore()
	facade := testhelpers.CartFacadeStub{SummaryFn: func(context.Context, int64) (*model.Order, error) {
		return nil, domainErrors.ErrNoActiveOrder
	}}
	resp := performRequest(t, http.MethodGet, orderSummaryPath, NewCartHandler(facade, store, discardLogger()).Summary, withUser, nil, nil)
	assertRedirect(t, resp, store, homePath, flash.Message{Level: flash.Success, Text: "You dont have an active order"})

	facade.SummaryFn = func(context.Context, int64) (*model.Order, error) { return nil, errors.New("db down") }
	resp = performRequest(t, http.MethodGet, orderSummaryPath, NewCartHandler(facade, store, discardLogger()).Summary, withUser, nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestCartHandlerHistory(t *testing.T) {
	facade := testhelpers.CartFacadeStub{HistoryFn: func(context.Context, int64) ([]model.Order, error) {
		order := testhelpers.SampleOrder()
		order.Ordered = true
		return []model.Order{*order}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/order-history", NewCartHandler(facade, newFlashStore(), discardLogger()).History, withUser, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var page dto.OrderHistoryPage
	if err := json.Unmarshal(resp.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(page.Orders) != 1 || !page.Orders[0].Ordered {
		t.Fatalf("unexpected history %+v", page.Orders)
	}

	facade.HistoryFn = func(context.Context, int64) ([]model.Order, error) { return nil, errors.New("db down") }
	resp = performRequest(t, http.MethodGet, "/order-history", NewCartHandler(facade, newFlashStore(), discardLogger()).History, withUser, nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}
