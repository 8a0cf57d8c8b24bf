package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits stored for every amount.
const Scale = 2

var (
	ErrInvalidMoney = errors.New("invalid money amount")
	ErrMissing      = errors.New("amount is required")

	// limit matches NUMERIC(16,2) columns.
	limit = decimal.New(1, 14)
)

// Limits on the decoded form, checked before Round rescales the value.
const (
	minExponent = -18
	maxExponent = 16
	maxDigits   = 34
)

func init() {
	// Amounts travel as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Normalize rounds to Scale and rejects values the store cannot hold.
func Normalize(d decimal.Decimal) (decimal.Decimal, error) {
	if e := d.Exponent(); e < minExponent || e > maxExponent {
		return decimal.Zero, fmt.Errorf("%w: exponent out of range", ErrInvalidMoney)
	}
	if d.NumDigits() > maxDigits {
		return decimal.Zero, fmt.Errorf("%w: too many digits", ErrInvalidMoney)
	}
	d = d.Round(Scale)
	if d.Abs().GreaterThanOrEqual(limit) {
		return decimal.Zero, fmt.Errorf("%w: too large", ErrInvalidMoney)
	}
	return d, nil
}

// Required unwraps a decoded optional amount.
func Required(d decimal.NullDecimal) (decimal.Decimal, error) {
	if !d.Valid {
		return decimal.Zero, ErrMissing
	}
	return Normalize(d.Decimal)
}

// Format renders an amount with exactly Scale fractional digits.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Scale)
}
