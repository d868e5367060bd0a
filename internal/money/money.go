// Package money renders amounts in the shop currency.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type Formatter struct {
	unit    currency.Unit
	scale   int
	printer *message.Printer
}

// NewFormatter formats amounts of the ISO 4217 currency code using the
// grouping rules of tag and the currency's standard number of decimals.
func NewFormatter(code string, tag language.Tag) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("parsing currency %q: %w", code, err)
	}

	scale, _ := currency.Standard.Rounding(unit)

	return &Formatter{
		unit:    unit,
		scale:   scale,
		printer: message.NewPrinter(tag),
	}, nil
}

// Format rounds half away from zero to the currency scale, e.g. "1 235 XAF".
func (f *Formatter) Format(amount decimal.Decimal) string {
	v, _ := amount.Round(int32(f.scale)).Float64()
	return f.printer.Sprintf("%v %s", number.Decimal(v, number.Scale(f.scale)), f.unit)
}

// Code returns the ISO currency code.
func (f *Formatter) Code() string {
	return f.unit.String()
}

var shop = mustFormatter("XAF", language.MustParse("fr-CM"))

func mustFormatter(code string, tag language.Tag) *Formatter {
	f, err := NewFormatter(code, tag)
	if err != nil {
		panic(err)
	}

	return f
}

// Format renders amount in Central African CFA francs.
func Format(amount decimal.Decimal) string {
	return shop.Format(amount)
}
