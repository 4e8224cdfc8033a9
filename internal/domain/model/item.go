package model

import "github.com/shopspring/decimal"

// Item is a catalog product. Rows are provisioned outside of the storefront.
type Item struct {
	ID          int64
	Title       string
	Slug        string
	Description string
	Price       decimal.Decimal
}
