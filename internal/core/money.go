// Package core holds the value types shared by the ledger packages.
//
// This file contains amount parsing and display helpers. Arithmetic is done
// on decimal.Decimal so cent values add up exactly.
package core

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no ISO code is configured.
const DefaultCurrency = "USD"

// ParseAmount converts a decimal string to an exact amount.
//
// Both dot (12.34) and comma (12,34) decimal separators are accepted. Signs are
// allowed because balances can be negative.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,34") -> 12.34, nil
//	ParseAmount("-0.01") -> -0.01, nil
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseOptionalAmount returns nil for an empty cell.
func ParseOptionalAmount(s string) (*decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := ParseAmount(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FormatOptionalAmount renders nil as an empty cell.
func FormatOptionalAmount(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// Cents rounds an amount half away from zero to two places.
func Cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatAmount renders d with the symbol and separators of currency.
// Unknown codes fall back to DefaultCurrency.
func FormatAmount(d decimal.Decimal, currency string) string {
	if money.GetCurrency(currency) == nil {
		currency = DefaultCurrency
	}
	cur := money.New(0, currency).Currency()
	minor := d.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}
