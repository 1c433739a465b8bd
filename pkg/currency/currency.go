// Package currency provides ISO 4217 currency metadata for the ledger.
// The registry is a static in-process table: codes are registered at
// startup and looked up on every Money construction.
package currency

import (
	"errors"
	"regexp"
	"sync"
)

const (
	// DefaultCurrency is the fallback currency code (USD).
	DefaultCurrency = Code("USD")
	// DefaultDecimals is the default number of decimal places for currencies.
	DefaultDecimals = 2
)

var (
	// ErrInvalidCurrencyCode is returned when a currency code is not a
	// well-formed ISO 4217 code.
	ErrInvalidCurrencyCode = errors.New("invalid currency code")
	// ErrUnsupportedCurrency is returned when a currency code is well-formed
	// but not registered.
	ErrUnsupportedCurrency = errors.New("unsupported currency")
)

// Code represents an ISO 4217 currency code (e.g. "USD", "EUR").
type Code string

// Common currency codes for convenience.
const (
	USD = Code("USD")
	EUR = Code("EUR")
	JPY = Code("JPY")
	GBP = Code("GBP")
	KWD = Code("KWD")
)

// Meta holds currency-specific metadata.
type Meta struct {
	Decimals int
	Symbol   string
}

var (
	mu       sync.RWMutex
	registry = map[Code]Meta{
		USD: {Decimals: 2, Symbol: "$"},
		EUR: {Decimals: 2, Symbol: "€"},
		JPY: {Decimals: 0, Symbol: "¥"},
		GBP: {Decimals: 2, Symbol: "£"},
		KWD: {Decimals: 3, Symbol: "د.ك"},
	}
)

var codeFormat = regexp.MustCompile(`^[A-Z]{3}$`)

// IsValidCurrencyFormat returns true if the code is a well-formed ISO 4217
// currency code (3 uppercase letters).
func IsValidCurrencyFormat(code string) bool {
	return codeFormat.MatchString(code)
}

// IsSupported reports whether the code is registered.
func IsSupported(code string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := registry[Code(code)]
	return ok
}

// Get returns the metadata for the given currency code.
func Get(code string) (Meta, error) {
	if !IsValidCurrencyFormat(code) {
		return Meta{}, ErrInvalidCurrencyCode
	}
	mu.RLock()
	defer mu.RUnlock()
	meta, ok := registry[Code(code)]
	if !ok {
		return Meta{}, ErrUnsupportedCurrency
	}
	return meta, nil
}

// Register adds or updates a currency in the registry.
func Register(code Code, meta Meta) error {
	if !IsValidCurrencyFormat(string(code)) {
		return ErrInvalidCurrencyCode
	}
	mu.Lock()
	defer mu.Unlock()
	registry[code] = meta
	return nil
}
