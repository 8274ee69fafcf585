// Package format renders numbers the way the dashboards display them to a
// Brazilian audience: dot thousands separators and comma decimals.
package format

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Int formats n with thousands separators, e.g. 1234567 -> "1.234.567".
func Int(n int) string {
	return printer.Sprintf("%d", n)
}

// Decimal formats v with the given number of decimals, e.g. (1234.5, 2) -> "1.234,50".
func Decimal(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return printer.Sprintf("%."+strconv.Itoa(decimals)+"f", v)
}

// BRL formats v as a Real amount, e.g. "R$ 1.234,50".
func BRL(v float64) string {
	if math.Signbit(v) && v != 0 {
		return "-R$ " + Decimal(-v, 2)
	}
	return "R$ " + Decimal(v, 2)
}

// Percent formats a fraction as a whole percentage, e.g. 0.734 -> "73%".
func Percent(frac float64) string {
	return printer.Sprintf("%d%%", int(math.Round(frac*100)))
}

// Signed formats v with an explicit sign and one decimal, e.g. -0.4 -> "-0,4".
func Signed(v float64) string {
	if v >= 0 {
		return "+" + Decimal(v, 1)
	}
	return Decimal(v, 1)
}
