package reports

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Money renders an amount the way every report shows it: "S/. 50.00".
func Money(symbol string, amount float64) string {
	s := decimal.NewFromFloat(amount).StringFixed(2)
	if symbol == "" {
		return s
	}
	return symbol + " " + s
}

// Round2 rounds to cents, half away from zero.
func Round2(amount float64) float64 {
	f, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return f
}

func Percent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}
