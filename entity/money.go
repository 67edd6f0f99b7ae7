package entity

import "github.com/shopspring/decimal"

func init() {
	// prices go out as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

// Rupees builds an amount from whole rupees.
func Rupees(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// MustRupees parses amounts such as "99.99"; for literals and seed data only.
func MustRupees(s string) decimal.Decimal { return decimal.RequireFromString(s) }
