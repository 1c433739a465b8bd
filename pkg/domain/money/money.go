// Package money implements the Money value object used for all balances
// and transaction amounts. Amounts are stored as integers in the smallest
// currency unit (e.g. cents for USD) to avoid floating-point drift.
package money

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/ederelias/bank-service/pkg/currency"
)

var (
	// ErrCurrencyMismatch is returned when arithmetic or comparison mixes
	// two different currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// Money represents a monetary amount with a currency.
// The zero value is 0 units of the empty currency and compares unequal to
// every valid Money; construct values through New or NewFromSmallestUnit.
type Money struct {
	amount   int64
	currency currency.Code
}

// New creates a Money from a float64 amount in the main currency unit.
// The amount is converted to the smallest currency unit; amounts with more
// decimal places than the currency supports are rejected.
func New(amount float64, code currency.Code) (Money, error) {
	if code == "" {
		code = currency.DefaultCurrency
	}
	smallest, err := toSmallestUnit(amount, code)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: smallest, currency: code}, nil
}

// NewFromSmallestUnit creates a Money directly from the smallest currency
// unit. Useful where precision is already handled.
func NewFromSmallestUnit(amount int64, code currency.Code) (Money, error) {
	if code == "" {
		code = currency.DefaultCurrency
	}
	if _, err := currency.Get(string(code)); err != nil {
		return Money{}, err
	}
	return Money{amount: amount, currency: code}, nil
}

// Amount returns the amount in the smallest currency unit.
func (m Money) Amount() int64 {
	return m.amount
}

// AmountFloat returns the amount as a float64 in the main currency unit.
func (m Money) AmountFloat() float64 {
	meta, err := currency.Get(string(m.currency))
	if err != nil {
		return 0
	}
	return float64(m.amount) / math.Pow10(meta.Decimals)
}

// Currency returns the currency code.
func (m Money) Currency() currency.Code {
	return m.currency
}

// Add returns the sum of two Money values of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// Subtract returns the difference of two Money values of the same currency.
func (m Money) Subtract(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount - other.amount, currency: m.currency}, nil
}

// Equals reports whether two Money values have the same currency and amount.
func (m Money) Equals(other Money) bool {
	return m.IsSameCurrency(other) && m.amount == other.amount
}

// GreaterThan reports whether m exceeds other.
func (m Money) GreaterThan(other Money) (bool, error) {
	if !m.IsSameCurrency(other) {
		return false, ErrCurrencyMismatch
	}
	return m.amount > other.amount, nil
}

// LessThan reports whether m is below other.
func (m Money) LessThan(other Money) (bool, error) {
	if !m.IsSameCurrency(other) {
		return false, ErrCurrencyMismatch
	}
	return m.amount < other.amount, nil
}

// IsSameCurrency reports whether both values share a currency.
func (m Money) IsSameCurrency(other Money) bool {
	return m.currency == other.currency
}

// IsPositive returns true if the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// IsNegative returns true if the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.amount < 0
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// Negate returns the Money with its amount negated.
func (m Money) Negate() Money {
	return Money{amount: -m.amount, currency: m.currency}
}

// String renders the amount with the currency's decimal places.
func (m Money) String() string {
	meta, err := currency.Get(string(m.currency))
	if err != nil {
		return fmt.Sprintf("%d %s", m.amount, m.currency)
	}
	return fmt.Sprintf("%.*f %s", meta.Decimals, m.AmountFloat(), m.currency)
}

// toSmallestUnit converts a float64 amount to the smallest currency unit
// using big.Rat so no precision is lost in the conversion.
func toSmallestUnit(amount float64, code currency.Code) (int64, error) {
	meta, err := currency.Get(string(code))
	if err != nil {
		return 0, err
	}

	amountStr := fmt.Sprintf("%.10f", amount)
	if parts := strings.Split(amountStr, "."); len(parts) > 1 {
		decimals := strings.TrimRight(parts[1], "0")
		if len(decimals) > meta.Decimals {
			return 0, fmt.Errorf("amount has more than %d decimal places", meta.Decimals)
		}
	}

	amountStr = fmt.Sprintf("%.*f", meta.Decimals, amount)
	amountRat, ok := new(big.Rat).SetString(amountStr)
	if !ok {
		return 0, fmt.Errorf("invalid amount format: %f", amount)
	}

	multiplier := int64(math.Pow10(meta.Decimals))
	smallestRat := new(big.Rat).Mul(amountRat, big.NewRat(multiplier, 1))
	if !smallestRat.IsInt() {
		return 0, fmt.Errorf("amount has more than %d decimal places", meta.Decimals)
	}

	smallest := smallestRat.Num()
	if !smallest.IsInt64() {
		return 0, fmt.Errorf("amount exceeds maximum safe integer value")
	}
	return smallest.Int64(), nil
}
