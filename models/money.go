package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MinorUnitExp is the number of decimal places between major and minor
// currency units.
const MinorUnitExp = 2

// FormatMinor renders minor units as a major-unit string, e.g. 1999 -> "19.99".
func FormatMinor(v int64) string {
	return decimal.New(v, -MinorUnitExp).StringFixed(MinorUnitExp)
}

// ParseMajor converts a major-unit amount such as "19.99" into minor units.
// Amounts with more precision than the currency allows are rejected.
func ParseMajor(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, NewValidationError("Invalid amount", FieldError{Field: "price", Message: "not a number"})
	}
	minor := d.Shift(MinorUnitExp)
	if !minor.IsInteger() {
		return 0, NewValidationError("Invalid amount", FieldError{Field: "price", Message: "too many decimal places"})
	}
	if minor.IsNegative() {
		return 0, NewValidationError("Invalid amount", FieldError{Field: "price", Message: "must not be negative"})
	}
	return minor.IntPart(), nil
}
