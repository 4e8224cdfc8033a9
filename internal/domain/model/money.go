package model

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// MinorUnits converts an amount to the smallest currency unit (cents).
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// FromMinorUnits converts cents back to a two place decimal amount.
func FromMinorUnits(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
