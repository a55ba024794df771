// Package money reads and renders the unit-tagged currency strings used by
// company records ("€245M": euros, in millions).
package money

import (
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the ISO code of every amount handled by the service.
const Currency = gomoney.EUR

// Unit is the suffix marking amounts expressed in millions.
const Unit = "M"

var million = decimal.New(1, 6)

// Symbol returns the currency grapheme ("€").
func Symbol() string {
	return gomoney.GetCurrency(Currency).Grapheme
}

// Parse strips the currency symbol and the unit suffix from s and reads the
// remainder as a decimal number of millions. Both markers are optional, the
// remainder is not: "€12.5M", "12.5M" and "12.5" parse, "€n/aM" does not.
func Parse(s string) (decimal.Decimal, bool) {
	rest := strings.TrimSpace(s)
	rest = strings.TrimPrefix(rest, Symbol())
	rest = strings.TrimSuffix(rest, Unit)
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(rest)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Format renders an amount of millions in record notation, e.g. "€245M".
func Format(d decimal.Decimal) string {
	return Symbol() + d.String() + Unit
}

// Display renders an amount of millions as a full currency amount,
// e.g. "€2,341,000,000.00".
func Display(d decimal.Decimal) string {
	cur := gomoney.GetCurrency(Currency)
	minor := d.Mul(million).Shift(int32(cur.Fraction)).Round(0).IntPart()
	return gomoney.New(minor, Currency).Display()
}
