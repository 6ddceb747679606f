// Package currency formats rupiah amounts for display.
package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// FormatRupiah renders an amount in whole rupiah, e.g. 1523000 -> "Rp. 1.523.000".
func FormatRupiah(amount int64) string {
	if amount < 0 {
		return "-Rp. " + printer.Sprintf("%d", -amount)
	}
	return "Rp. " + printer.Sprintf("%d", amount)
}
