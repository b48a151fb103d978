// Package money holds the monetary arithmetic for fee/fine balances.
// All amounts are exact decimals at currency minor-unit precision
// (scale 2, half-up rounding applied once at the parse boundary).
// Every balance comparison and computation in the service goes through
// this package; binary floating point is never involved.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of minor-unit digits kept for every amount.
const Scale = 2

// Parse converts a raw amount string into an exact decimal normalized
// to minor-unit precision. Malformed input is rejected; sign policy is
// the validator's concern, not the parser's.
func Parse(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid monetary amount %q: %w", raw, err)
	}
	return d.Round(Scale), nil
}

// IsZero reports whether d is exactly zero at minor-unit precision.
// This is an exact comparison, not an epsilon test.
func IsZero(d decimal.Decimal) bool {
	return d.Round(Scale).IsZero()
}

// Subtract returns a - b normalized to minor-unit precision.
func Subtract(a, b decimal.Decimal) decimal.Decimal {
	return a.Sub(b).Round(Scale)
}

// Add returns a + b normalized to minor-unit precision.
func Add(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b).Round(Scale)
}

// Zero is the canonical 0.00 value.
func Zero() decimal.Decimal {
	return decimal.New(0, -Scale)
}

// Format renders d with exactly Scale fractional digits, the form
// stored in Postgres and returned over the wire.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Scale)
}
