package calculator

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// CurrencyScale is the number of decimal places money is displayed and transferred with.
	CurrencyScale int32 = 2

	// DefaultShareScale is the scale the per-person share is divided at.
	DefaultShareScale int32 = 10
)

// Tolerance is the smallest balance magnitude that still counts as a debt.
var Tolerance = decimal.New(1, -CurrencyScale)

// RoundCurrency rounds d half-up (away from zero on ties) to CurrencyScale places.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyScale)
}

// IsSettled reports whether d is within Tolerance of zero.
func IsSettled(d decimal.Decimal) bool {
	return d.Abs().LessThan(Tolerance)
}

// ParseAmount parses a decimal amount, accepting "12.34" and "12,34".
// Anything unparseable is coerced to zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		slog.Warn("Coercing malformed amount to zero", "amount", s, "error", err)
		return decimal.Zero
	}
	return d
}
