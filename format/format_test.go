package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/coin-ticker/quotes"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{0, "$0.000000"},
		{0.0123456789, "$0.012346"},
		{0.999999, "$0.999999"},
		{1, "$1.0000"},
		{9.87654, "$9.8765"},
		{10, "$10.00"},
		{1234.5, "$1,234.50"},
		{65432.109, "$65,432.11"},
		{1234567.891, "$1,234,567.89"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Price(tt.price))
		})
	}
}

func TestLargeNumber(t *testing.T) {
	tests := []struct {
		num  float64
		want string
	}{
		{2.45e12, "$2.45T"},
		{1e12, "$1.00T"},
		{987.6e9, "$987.60B"},
		{1.5e9, "$1.50B"},
		{32.1e6, "$32.10M"},
		{999999, "$999,999"},
		{12345.678, "$12,345.678"},
		{0, "$0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, LargeNumber(tt.num))
		})
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, "+1.23%", Percentage(quotes.FloatPtr(1.234)))
	assert.Equal(t, "+0.00%", Percentage(quotes.FloatPtr(0)))
	assert.Equal(t, "-4.57%", Percentage(quotes.FloatPtr(-4.567)))
	assert.Equal(t, "N/A", Percentage(nil))
}

func TestTotalMarketCap(t *testing.T) {
	list := []quotes.AssetQuote{
		{ID: "a", MarketCap: 1.1e12},
		{ID: "b", MarketCap: 0.2e12},
		{ID: "aux", MarketCap: 0},
	}
	assert.InDelta(t, 1.3e12, TotalMarketCap(list), 1)
	assert.Equal(t, 0.0, TotalMarketCap(nil))
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "1", groupThousands("1"))
	assert.Equal(t, "123", groupThousands("123"))
	assert.Equal(t, "1,234", groupThousands("1234"))
	assert.Equal(t, "123,456.78", groupThousands("123456.78"))
	assert.Equal(t, "-1,000,000", groupThousands("-1000000"))
}

func TestWriteTable(t *testing.T) {
	list := []quotes.AssetQuote{
		{ID: "bitcoin", Name: "Bitcoin", Symbol: "btc", CurrentPrice: 65000, MarketCap: 1.28e12,
			TotalVolume: 3.1e10, MarketCapRank: quotes.IntPtr(1), PriceChangePercentage24h: quotes.FloatPtr(-1.2)},
		{ID: "aux:kwe", Name: "KWE", Symbol: "kwe", CurrentPrice: 0.05, IsAuxiliary: true},
		{ID: "ethereum", Name: "Ethereum", Symbol: "eth", CurrentPrice: 3500, MarketCapRank: quotes.IntPtr(2)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, list, 2))

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "$1.28T")
	assert.Contains(t, lines[2], "BTC")
	assert.Contains(t, lines[2], "$65,000.00")
	assert.Contains(t, lines[2], "-1.20%")
	assert.Contains(t, lines[3], "KWE")
	assert.Contains(t, lines[3], "N/A")
	assert.NotContains(t, out, "Ethereum")
}
