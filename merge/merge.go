package merge

import (
	"log"
	"sort"

	"github.com/status-im/coin-ticker/aux_stats"
	"github.com/status-im/coin-ticker/config"
	"github.com/status-im/coin-ticker/quotes"
)

// BuildAuxQuote builds the board entry of the auxiliary asset, ranked at the declared
// rank. Every field whose source is unavailable falls back on its own: price 0,
// 24h change unavailable, market cap and volume 0.
func BuildAuxQuote(cfg config.AuxAssetConfig, price quotes.Result[float64], stats quotes.Result[aux_stats.Stats]) quotes.AssetQuote {
	quote := quotes.AssetQuote{
		ID:           cfg.ID,
		Symbol:       cfg.Symbol,
		Name:         cfg.Name,
		Image:        cfg.Image,
		CurrentPrice:  price.OrElse(0),
		MarketCapRank: quotes.IntPtr(cfg.DeclaredRank),
		IsAuxiliary:   true,
	}

	if s, ok := stats.Get(); ok {
		quote.PriceChangePercentage24h = quotes.FloatPtr(s.Change24h)
		quote.MarketCap = s.MarketCap
		quote.TotalVolume = s.Volume24h
	}

	return quote
}

// Merge combines the market pages with the auxiliary entry:
// pages are flattened in order, duplicate ids keep the last record seen (at the
// position of the first), the list is stably sorted by ascending rank with
// unranked entries last, and aux is inserted before the first entry ranked
// worse than declaredRank.
func Merge(aux quotes.AssetQuote, pages [][]quotes.AssetQuote, declaredRank int) []quotes.AssetQuote {
	merged := Dedup(pages, aux.ID)
	SortByRank(merged)
	return InsertAtRank(merged, aux, declaredRank)
}

// Dedup flattens pages and removes duplicate ids, last write wins.
// Entries whose id equals reservedID are dropped.
func Dedup(pages [][]quotes.AssetQuote, reservedID string) []quotes.AssetQuote {
	total := 0
	for _, page := range pages {
		total += len(page)
	}

	result := make([]quotes.AssetQuote, 0, total)
	index := make(map[string]int, total)
	duplicates := 0

	for _, page := range pages {
		for _, quote := range page {
			if quote.ID == reservedID {
				log.Printf("Merge: Dropping market entry colliding with auxiliary id %q", quote.ID)
				continue
			}
			if i, ok := index[quote.ID]; ok {
				result[i] = quote
				duplicates++
				continue
			}
			index[quote.ID] = len(result)
			result = append(result, quote)
		}
	}

	if duplicates > 0 {
		log.Printf("Merge: Replaced %d duplicate entries", duplicates)
	}
	return result
}

// SortByRank stably sorts by ascending market cap rank, unranked entries last
func SortByRank(list []quotes.AssetQuote) {
	sort.SliceStable(list, func(i, j int) bool {
		return rankLess(list[i], list[j])
	})
}

func rankLess(a, b quotes.AssetQuote) bool {
	switch {
	case !a.HasRank():
		return false
	case !b.HasRank():
		return true
	default:
		return *a.MarketCapRank < *b.MarketCapRank
	}
}

// InsertAtRank returns a new list with quote inserted before the first entry whose
// rank is greater than rank (unranked counts as greater), or appended when none is
func InsertAtRank(list []quotes.AssetQuote, quote quotes.AssetQuote, rank int) []quotes.AssetQuote {
	pos := len(list)
	for i, q := range list {
		if !q.HasRank() || *q.MarketCapRank > rank {
			pos = i
			break
		}
	}

	result := make([]quotes.AssetQuote, 0, len(list)+1)
	result = append(result, list[:pos]...)
	result = append(result, quote)
	result = append(result, list[pos:]...)
	return result
}
