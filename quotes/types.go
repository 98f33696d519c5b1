package quotes

import "time"

// AssetQuote is one row of the price board
type AssetQuote struct {
	ID                       string   `json:"id"`
	Symbol                   string   `json:"symbol"`
	Name                     string   `json:"name"`
	Image                    string   `json:"image"`
	CurrentPrice             float64  `json:"current_price"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"` // nil when unavailable
	MarketCap                float64  `json:"market_cap"`
	TotalVolume              float64  `json:"total_volume"`
	MarketCapRank            *int     `json:"market_cap_rank"` // nil when unranked
	IsAuxiliary              bool     `json:"is_auxiliary,omitempty"`
}

// HasRank reports whether the quote carries a market cap rank
func (q AssetQuote) HasRank() bool {
	return q.MarketCapRank != nil
}

// Rank returns the market cap rank, or 0 for unranked quotes
func (q AssetQuote) Rank() int {
	if q.MarketCapRank == nil {
		return 0
	}
	return *q.MarketCapRank
}

// Snapshot is an immutable published state of the board
type Snapshot struct {
	Quotes    []AssetQuote `json:"quotes"`
	UpdatedAt time.Time    `json:"updated_at"`
	Version   uint64       `json:"version"`
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}

// FloatPtr returns a pointer to v
func FloatPtr(v float64) *float64 {
	return &v
}
