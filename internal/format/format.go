// Package format holds the presentation helpers shared by every view:
// fixed-point currency with thousands grouping and explicitly signed
// percentages.
package format

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency formats an amount as US dollars with two fraction digits,
// e.g. 1234.5 -> "$1,234.50".
func Currency(amount float64) string {
	return CurrencyN(amount, 2)
}

// CurrencyN is Currency with a caller-chosen number of fraction digits.
// The sign goes before the symbol: -1234.5 -> "-$1,234.50".
func CurrencyN(amount float64, decimals int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	n := number.Decimal(amount,
		number.MinFractionDigits(decimals),
		number.MaxFractionDigits(decimals),
	)
	return sign + "$" + printer.Sprint(n)
}

// Percentage formats a signed percentage with two fraction digits and an
// explicit "+" for non-negative values: 2 -> "+2.00%", -3.456 -> "-3.46%".
func Percentage(value float64) string {
	return PercentageN(value, 2)
}

// PercentageN is Percentage with a caller-chosen number of fraction digits.
func PercentageN(value float64, decimals int) string {
	s := strconv.FormatFloat(value, 'f', decimals, 64)
	if value >= 0 {
		s = "+" + s
	}
	return s + "%"
}
