package export

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Amount formats a monetary value with thousands separators and two decimals.
func Amount(d decimal.Decimal) string {
	return Number(d, 2)
}

// Number formats d rounded to places with thousands separators.
func Number(d decimal.Decimal, places int32) string {
	if places < 0 {
		places = 0
	}
	abs := d.Abs().Round(places)
	out := printer.Sprintf("%d", abs.IntPart())
	if places > 0 {
		fixed := abs.StringFixed(places)
		if dot := strings.IndexByte(fixed, '.'); dot >= 0 {
			out += fixed[dot:]
		}
	}
	if d.IsNegative() && !abs.IsZero() {
		out = "-" + out
	}
	return out
}

// Integer formats n with thousands separators.
func Integer(n int64) string {
	return printer.Sprintf("%d", n)
}
