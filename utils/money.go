package utils

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var usdPrinter = message.NewPrinter(language.English)

// FormatUSD renders an amount for notification copy, e.g. "$1,250.00". The
// digits come straight from the decimal; only the integer part goes through
// the locale printer, for grouping, so the copy never shows a rounded amount.
func FormatUSD(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	units, cents, _ := strings.Cut(fixed, ".")

	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}

	n, err := strconv.ParseInt(units, 10, 64)
	if err != nil {
		// Outside int64 range; skip grouping.
		return sign + "$" + units + "." + cents
	}
	return usdPrinter.Sprintf("%s$%v.%s", sign, number.Decimal(n), cents)
}
