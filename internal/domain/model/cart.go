package model

import "strings"

// CartOutcome tells what a cart mutation did.
type CartOutcome int

const (
	CartItemAdded CartOutcome = iota + 1
	CartQuantityUpdated
	CartItemRemoved
	CartItemNotInCart
	CartNoActiveOrder
)

func (o CartOutcome) String() string {
	switch o {
	case CartItemAdded:
		return "item_added"
	case CartQuantityUpdated:
		return "quantity_updated"
	case CartItemRemoved:
		return "item_removed"
	case CartItemNotInCart:
		return "item_not_in_cart"
	case CartNoActiveOrder:
		return "no_active_order"
	default:
		return "unknown"
	}
}

// CartResult is returned by cart mutations.
type CartResult struct {
	Outcome  CartOutcome
	Item     Item
	Quantity int
}

// AddressForm carries the checkout form.
type AddressForm struct {
	StreetAddress    string
	ApartmentAddress string
	Country          string
	Zip              string
	SaveInfo         bool
	UseDefault       bool
	PaymentOption    string
}

// Valid reports whether every required field is filled in.
func (f AddressForm) Valid() bool {
	for _, v := range []string{f.StreetAddress, f.Country, f.Zip, f.PaymentOption} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}
