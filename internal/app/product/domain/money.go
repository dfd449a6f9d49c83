package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits kept for monetary values.
const MoneyScale = 2

// maxMoney is the largest amount a decimal(10,2) column can hold.
var maxMoney = decimal.RequireFromString("99999999.99")

const (
	// storageIntegerDigits is the number of digits before the point in decimal(10,2).
	storageIntegerDigits = 8
	// parseIntegerDigits bounds what ParseMoney will round. Anything larger
	// cannot be a price and would make rounding arbitrarily expensive.
	parseIntegerDigits = 18
)

// Money represents a monetary amount with fixed two-digit precision.
// It wraps decimal.Decimal so prices never pass through binary floats.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates Money from a decimal, rounding to two fractional digits.
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount.Round(MoneyScale)}
}

// NewMoneyFromCents creates Money from an integer number of cents.
// Example: NewMoneyFromCents(999) represents 9.99
func NewMoneyFromCents(cents int64) Money {
	return Money{amount: decimal.New(cents, -MoneyScale)}
}

// ParseMoney parses a decimal string such as "19.99".
// Values with more than two fractional digits are rejected.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money value %q: %w", s, err)
	}
	if !HasMoneyScale(d) {
		return Money{}, ErrPriceScale
	}
	if integerDigits(d) > parseIntegerDigits {
		return Money{}, ErrPriceOutOfRange
	}
	return NewMoney(d), nil
}

// MustParseMoney is like ParseMoney but panics on error. Intended for tests and constants.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// NewMoneyFromRat converts a NUMERIC value read from storage.
func NewMoneyFromRat(r *big.Rat) (Money, error) {
	if r == nil {
		return Money{}, fmt.Errorf("money value is null")
	}
	return ParseMoney(r.FloatString(MoneyScale))
}

// HasMoneyScale reports whether d has at most two fractional digits.
func HasMoneyScale(d decimal.Decimal) bool {
	_, exp := significand(d)
	return exp >= -MoneyScale
}

// FitsMoneyStorage reports whether a non-negative d with money scale is at
// most 99999999.99. Unlike ExceedsStorage it is safe on unrounded input.
func FitsMoneyStorage(d decimal.Decimal) bool {
	return integerDigits(d) <= storageIntegerDigits
}

// significand returns the digits of d without trailing zeros and the
// exponent that goes with them. Zero has no digits. d is never rescaled,
// so the cost does not depend on the exponent.
func significand(d decimal.Decimal) (string, int64) {
	digits := strings.TrimPrefix(d.Coefficient().String(), "-")
	if digits == "0" {
		return "", 0
	}
	trimmed := strings.TrimRight(digits, "0")
	return trimmed, int64(d.Exponent()) + int64(len(digits)-len(trimmed))
}

// integerDigits counts the digits before the decimal point, or a
// non-positive number for amounts below one.
func integerDigits(d decimal.Decimal) int64 {
	digits, exp := significand(d)
	if digits == "" {
		return 0
	}
	return int64(len(digits)) + exp
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Rat returns the value as a big.Rat for Spanner NUMERIC columns.
func (m Money) Rat() *big.Rat {
	return m.amount.Rat()
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative returns true if the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// ExceedsStorage returns true if the amount cannot be stored as decimal(10,2).
func (m Money) ExceedsStorage() bool {
	return m.amount.GreaterThan(maxMoney)
}

// Equals compares two amounts numerically, so 9.9 equals 9.90.
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String returns the amount with exactly two fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}
