package dto

import (
	"time"

	"github.com/polkiloo/storefront/internal/server/http/flash"
)

// OrderItemResponse is a line of an order.
type OrderItemResponse struct {
	Item     ItemResponse `json:"item"`
	Quantity int          `json:"quantity"`
	Total    string       `json:"total"`
}

// CouponResponse is the coupon attached to an order.
type CouponResponse struct {
	Code   string `json:"code"`
	Amount string `json:"amount"`
}

// AddressResponse is the shipping address of an order.
type AddressResponse struct {
	StreetAddress    string `json:"street_address"`
	ApartmentAddress string `json:"apartment_address,omitempty"`
	Country          string `json:"country"`
	Zip              string `json:"zip"`
	Default          bool   `json:"default"`
}

// OrderResponse renders an order with computed totals.
type OrderResponse struct {
	ID          int64               `json:"id"`
	Ordered     bool                `json:"ordered"`
	StartDate   time.Time           `json:"start_date"`
	OrderedDate *time.Time          `json:"ordered_date,omitempty"`
	Items       []OrderItemResponse `json:"items"`
	Coupon      *CouponResponse     `json:"coupon,omitempty"`
	Address     *AddressResponse    `json:"address,omitempty"`
	Subtotal    string              `json:"subtotal"`
	Total       string              `json:"total"`
}

// OrderSummaryPage renders the open order.
type OrderSummaryPage struct {
	Messages []flash.Message `json:"messages"`
	Order    OrderResponse   `json:"order"`
}

// OrderHistoryPage lists completed orders.
type OrderHistoryPage struct {
	Messages []flash.Message `json:"messages"`
	Orders   []OrderResponse `json:"orders"`
}
