package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/status-im/coin-ticker/quotes"
)

// WriteTable renders quotes the way the board shows them: rank, name, symbol,
// price, 24h change, market cap and volume. limit <= 0 renders every row.
func WriteTable(w io.Writer, list []quotes.AssetQuote, limit int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(tw, "The global crypto market cap is %s\n", LargeNumber(TotalMarketCap(list)))
	fmt.Fprintln(tw, "#\tName\tSymbol\tPrice\t24h %\tMarket Cap\tVolume (24h)\t")

	for i, q := range list {
		if limit > 0 && i >= limit {
			break
		}
		rank := "-"
		if q.HasRank() {
			rank = strconv.Itoa(q.Rank())
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			rank,
			q.Name,
			strings.ToUpper(q.Symbol),
			Price(q.CurrentPrice),
			Percentage(q.PriceChangePercentage24h),
			LargeNumber(q.MarketCap),
			LargeNumber(q.TotalVolume),
		)
	}

	return tw.Flush()
}
