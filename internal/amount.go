package internal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	maxAmountExponent = 64
	maxAmountDigits   = 40
)

// ParseAmount parses a user supplied amount. Only positive decimals are accepted.
// Scientific notation is bounded so a short input cannot expand into a huge number.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w %q", ErrInvalidAmount, s)
	}
	if exp := d.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent || d.NumDigits() > maxAmountDigits {
		return decimal.Decimal{}, fmt.Errorf("%w: out of range", ErrInvalidAmount)
	}
	if !d.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: must be positive, got %s", ErrInvalidAmount, d.String())
	}
	return d, nil
}
