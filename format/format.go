package format

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/status-im/coin-ticker/quotes"
)

var (
	trillion = decimal.New(1, 12)
	billion  = decimal.New(1, 9)
	million  = decimal.New(1, 6)
	one      = decimal.New(1, 0)
	ten      = decimal.New(1, 1)
)

// Price formats a USD price: 6 decimals below $1, 4 below $10, else 2 with grouping
func Price(price float64) string {
	d := decimal.NewFromFloat(price)
	switch {
	case d.LessThan(one):
		return "$" + d.StringFixed(6)
	case d.LessThan(ten):
		return "$" + d.StringFixed(4)
	default:
		return "$" + groupThousands(d.StringFixed(2))
	}
}

// LargeNumber formats market cap and volume figures with a T/B/M suffix
func LargeNumber(num float64) string {
	d := decimal.NewFromFloat(num)
	switch {
	case d.GreaterThanOrEqual(trillion):
		return "$" + d.Div(trillion).StringFixed(2) + "T"
	case d.GreaterThanOrEqual(billion):
		return "$" + d.Div(billion).StringFixed(2) + "B"
	case d.GreaterThanOrEqual(million):
		return "$" + d.Div(million).StringFixed(2) + "M"
	default:
		return "$" + groupThousands(d.Round(3).String())
	}
}

// Percentage formats a 24h change as "+1.23%"; nil renders as "N/A"
func Percentage(pct *float64) string {
	if pct == nil {
		return "N/A"
	}
	d := decimal.NewFromFloat(*pct)
	sign := ""
	if !d.IsNegative() {
		sign = "+"
	}
	return sign + d.StringFixed(2) + "%"
}

// TotalMarketCap sums the market cap of every entry
func TotalMarketCap(list []quotes.AssetQuote) float64 {
	total := decimal.Zero
	for _, q := range list {
		total = total.Add(decimal.NewFromFloat(q.MarketCap))
	}
	return total.InexactFloat64()
}

// groupThousands inserts commas into the integer part of a plain decimal string
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + fracPart
}
