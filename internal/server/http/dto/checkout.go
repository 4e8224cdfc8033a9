package dto

import "github.com/polkiloo/storefront/internal/server/http/flash"

// FormField describes one input of a rendered form.
type FormField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// AddressFormFields is the schema of the checkout address form.
var AddressFormFields = []FormField{
	{Name: "street_address", Type: "text", Required: true},
	{Name: "apartment_address", Type: "text"},
	{Name: "country", Type: "text", Required: true},
	{Name: "zip", Type: "text", Required: true},
	{Name: "save_info", Type: "checkbox"},
	{Name: "use_default", Type: "checkbox"},
	{Name: "payment_option", Type: "radio", Required: true},
}

// CouponFormFields is the schema of the coupon form.
var CouponFormFields = []FormField{
	{Name: "code", Type: "text", Required: true},
}

// CheckoutPage renders the checkout step.
type CheckoutPage struct {
	Messages          []flash.Message `json:"messages"`
	Order             OrderResponse   `json:"order"`
	Form              []FormField     `json:"form"`
	CouponForm        []FormField     `json:"coupon_form"`
	DisplayCouponForm bool            `json:"display_coupon_form"`
}

// PaymentPage renders the confirmation step before charging.
type PaymentPage struct {
	Messages          []flash.Message `json:"messages"`
	Order             OrderResponse   `json:"order"`
	Total             string          `json:"total"`
	DisplayCouponForm bool            `json:"display_coupon_form"`
}
