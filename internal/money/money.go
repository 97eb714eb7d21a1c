// Package money converts between the comma-decimal amount strings used on
// the wire ("4,75") and the decimal values the rest of the system computes
// with. All parsing of user-entered amounts goes through here so that the
// domain logic never sees a locale-formatted string.
package money

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrMalformedAmount is returned for any input that is not a non-negative
// decimal with a comma separator and at most two fractional digits.
var ErrMalformedAmount = errors.New("malformed amount")

// amountPattern matches e.g. "0", "100", "4,7", "4,75". No sign, no
// thousands separators, comma as the decimal separator.
var amountPattern = regexp.MustCompile(`^[0-9]+(,[0-9]{1,2})?$`)

// Parse converts a wire amount string to a decimal.
func Parse(s string) (decimal.Decimal, error) {
	if !amountPattern.MatchString(s) {
		return decimal.Zero, ErrMalformedAmount
	}

	d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	if err != nil {
		return decimal.Zero, ErrMalformedAmount
	}

	return d, nil
}

// Format renders a decimal as a wire amount string with exactly two
// fractional digits, e.g. "150,00".
func Format(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}
