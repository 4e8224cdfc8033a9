package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Address is a shipping address captured at checkout.
type Address struct {
	ID               int64
	UserID           int64
	StreetAddress    string
	ApartmentAddress string
	Country          string
	Zip              string
	Default          bool
}

// Coupon grants a fixed discount on the order total.
type Coupon struct {
	ID     int64
	Code   string
	Amount decimal.Decimal
}

// Payment records a successful gateway charge.
type Payment struct {
	ID        int64
	UserID    int64
	ChargeID  string
	Amount    decimal.Decimal
	Timestamp time.Time
}
