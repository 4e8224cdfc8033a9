package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"already exists", ErrAlreadyExists},
		{"not found", ErrNotFound},
		{"invalid credentials", ErrInvalidCredentials},
		{"no active order", ErrNoActiveOrder},
		{"item not found", ErrItemNotFound},
		{"coupon not found", ErrCouponNotFound},
		{"invalid coupon code", ErrInvalidCouponCode},
		{"no default address", ErrNoDefaultAddress},
		{"incomplete address", ErrIncompleteAddress},
		{"invalid payment option", ErrInvalidPaymentOption},
		{"address required", ErrAddressRequired},
		{"empty order", ErrEmptyOrder},
		{"nothing to charge", ErrNothingToCharge},
		{"payment mismatch", ErrPaymentMismatch},
		{"invalid signature", ErrInvalidSignature},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", tc.err)
			if !stdErrors.Is(wrapped, tc.err) {
				t.Fatalf("expected wrapped error to match: %v", tc.err)
			}
		})
	}
}

func TestPaymentError(t *testing.T) {
	cause := stdErrors.New("declined")
	err := fmt.Errorf("charge: %w", &PaymentError{Kind: PaymentErrorCard, Message: "Your card was declined.", Err: cause})

	var paymentErr *PaymentError
	if !stdErrors.As(err, &paymentErr) {
		t.Fatalf("expected PaymentError, got %T", err)
	}
	if paymentErr.Kind != PaymentErrorCard {
		t.Fatalf("unexpected kind %q", paymentErr.Kind)
	}
	if !stdErrors.Is(err, cause) {
		t.Fatal("expected cause to be unwrapped")
	}
	if got := paymentErr.Error(); got != "payment card error: Your card was declined." {
		t.Fatalf("unexpected message %q", got)
	}
	if got := (&PaymentError{Kind: PaymentErrorUnknown}).Error(); got != "payment unknown error" {
		t.Fatalf("unexpected message %q", got)
	}
}
