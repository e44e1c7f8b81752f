package renderer

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the currency all prices are displayed in.
const Currency = money.USD

// none is displayed for missing values.
const none = "—"

// Price formats a price, e.g. "$1,234.50".
func Price(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return none
	}
	// to get a never nil currency I need to call the Money constructor
	cur := money.New(0, Currency).Currency()
	fraction := int32(cur.Fraction)
	d := decimal.NewFromFloat(v).Round(fraction)
	minor := d.Shift(fraction)
	if !minor.BigInt().IsInt64() {
		// beyond the int64 minor units go-money works with.
		if d.IsNegative() {
			return "-" + cur.Grapheme + d.Neg().StringFixed(fraction)
		}
		return cur.Grapheme + d.StringFixed(fraction)
	}
	return cur.Formatter().Format(minor.IntPart())
}

// SignedPrice formats a price difference with an explicit sign for gains.
func SignedPrice(v float64) string {
	s := Price(v)
	if v > 0 && s != none {
		return "+" + s
	}
	return s
}

// ROI formats a return on investment with one decimal, or none.
func ROI(roi *float64) string {
	if roi == nil || math.IsNaN(*roi) || math.IsInf(*roi, 0) {
		return none
	}
	return fmt.Sprintf("%.1f%%", *roi)
}

// Year formats an optional year.
func Year(y *int) string {
	if y == nil {
		return none
	}
	return strconv.Itoa(*y)
}

// orNone returns s, or none when it is empty.
func orNone(s string) string {
	if s == "" {
		return none
	}
	return s
}
