package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a quantity of an item placed by a user.
type OrderItem struct {
	ID       int64
	UserID   int64
	ItemID   int64
	OrderID  int64
	Ordered  bool
	Quantity int
	Item     Item
}

// Total returns price multiplied by quantity.
func (oi OrderItem) Total() decimal.Decimal {
	return oi.Item.Price.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}

// Order aggregates order items of a user. At most one order per user is open (Ordered=false).
type Order struct {
	ID          int64
	UserID      int64
	Ordered     bool
	StartDate   time.Time
	OrderedDate *time.Time
	AddressID   *int64
	PaymentID   *int64
	CouponID    *int64

	Items   []OrderItem
	Coupon  *Coupon
	Address *Address
}

// Subtotal sums item totals before discounts.
func (o *Order) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, oi := range o.Items {
		total = total.Add(oi.Total())
	}
	return total
}

// Total applies the coupon discount to the subtotal, never going below zero.
func (o *Order) Total() decimal.Decimal {
	total := o.Subtotal()
	if o.Coupon != nil {
		total = total.Sub(o.Coupon.Amount)
	}
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// Find returns the order item referencing itemID.
func (o *Order) Find(itemID int64) (*OrderItem, bool) {
	for i := range o.Items {
		if o.Items[i].ItemID == itemID {
			return &o.Items[i], true
		}
	}
	return nil, false
}
