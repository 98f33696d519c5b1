package coingecko_markets

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/status-im/coin-ticker/quotes"
)

// MarketsParams describes one markets page request
type MarketsParams struct {
	Currency  string
	Order     string
	Page      int
	PerPage   int
	Sparkline bool
}

// CoinGeckoData is one element of the /coins/markets response, restricted to the board fields
type CoinGeckoData struct {
	ID                       string   `json:"id"`
	Symbol                   string   `json:"symbol"`
	Name                     string   `json:"name"`
	Image                    string   `json:"image"`
	CurrentPrice             *float64 `json:"current_price"`
	MarketCap                *float64 `json:"market_cap"`
	MarketCapRank            *int     `json:"market_cap_rank"`
	TotalVolume              *float64 `json:"total_volume"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
}

// ToQuote converts the upstream record; null numbers become 0 except the 24h change,
// which stays nil so consumers can tell it is unavailable
func (d CoinGeckoData) ToQuote() quotes.AssetQuote {
	return quotes.AssetQuote{
		ID:                       d.ID,
		Symbol:                   d.Symbol,
		Name:                     d.Name,
		Image:                    d.Image,
		CurrentPrice:             valueOrZero(d.CurrentPrice),
		PriceChangePercentage24h: d.PriceChangePercentage24h,
		MarketCap:                valueOrZero(d.MarketCap),
		TotalVolume:              valueOrZero(d.TotalVolume),
		MarketCapRank:            d.MarketCapRank,
	}
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// ConvertMarketsResponse decodes a /coins/markets body into quotes, skipping records without an id
func ConvertMarketsResponse(body []byte) ([]quotes.AssetQuote, error) {
	var items []CoinGeckoData
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("error parsing markets response: %w", err)
	}

	result := make([]quotes.AssetQuote, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			log.Printf("MarketsFetcher: Skipping record without id (symbol %q)", item.Symbol)
			continue
		}
		result = append(result, item.ToQuote())
	}
	return result, nil
}
