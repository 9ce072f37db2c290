package axis

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// FormatValue formats a data value for min/max labels and ticks, with at
// most three fraction digits and grouped thousands.
func FormatValue(v float32) string {
	return printer.Sprint(number.Decimal(float64(v), number.MaxFractionDigits(3)))
}
