package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists        = errors.New("already exists")
	ErrNotFound             = errors.New("not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrNoActiveOrder        = errors.New("no active order")
	ErrItemNotFound         = errors.New("item not found")
	ErrCouponNotFound       = errors.New("coupon not found")
	ErrInvalidCouponCode    = errors.New("invalid coupon code")
	ErrNoDefaultAddress     = errors.New("no default address")
	ErrIncompleteAddress    = errors.New("address form is incomplete")
	ErrInvalidPaymentOption = errors.New("invalid payment option")
	ErrAddressRequired      = errors.New("order has no address")
	ErrEmptyOrder           = errors.New("order is empty")
	ErrNothingToCharge      = errors.New("order total is zero")
	ErrPaymentMismatch      = errors.New("payment does not match order")
	ErrInvalidSignature     = errors.New("invalid event signature")
)

// PaymentErrorKind classifies payment gateway failures.
type PaymentErrorKind string

const (
	PaymentErrorCard           PaymentErrorKind = "card"
	PaymentErrorInvalidRequest PaymentErrorKind = "invalid_request"
	PaymentErrorAuthentication PaymentErrorKind = "authentication"
	PaymentErrorConnection     PaymentErrorKind = "connection"
	PaymentErrorGateway        PaymentErrorKind = "gateway"
	PaymentErrorUnknown        PaymentErrorKind = "unknown"
)

// PaymentError wraps a gateway failure with its classification.
type PaymentError struct {
	Kind    PaymentErrorKind
	Message string
	Err     error
}

func (e *PaymentError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("payment %s error", e.Kind)
	}
	return fmt.Sprintf("payment %s error: %s", e.Kind, e.Message)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}
