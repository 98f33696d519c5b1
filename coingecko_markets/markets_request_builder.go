package coingecko_markets

import (
	"strconv"

	"github.com/status-im/coin-ticker/config"
	cm "github.com/status-im/coin-ticker/market_common"
)

const (
	// Complete path for markets API endpoint
	MARKETS_API_PATH = "/api/v3/coins/markets"
)

// MarketsRequestBuilder builds requests for the CoinGecko markets endpoint
type MarketsRequestBuilder struct {
	*cm.RequestBuilder
}

// NewMarketRequestBuilder creates a new request builder for markets endpoint
func NewMarketRequestBuilder(baseURL string) *MarketsRequestBuilder {
	rb := &MarketsRequestBuilder{
		RequestBuilder: cm.NewRequestBuilder(baseURL, MARKETS_API_PATH),
	}

	rb.WithCurrency(config.DefaultCurrency)
	rb.WithOrder(config.DefaultOrder)
	rb.WithSparkline(false)

	return rb
}

// WithParams applies every non-zero field of params
func (rb *MarketsRequestBuilder) WithParams(params MarketsParams) *MarketsRequestBuilder {
	rb.WithCurrency(params.Currency)
	return rb.
		WithOrder(params.Order).
		WithPage(params.Page).
		WithPerPage(params.PerPage).
		WithSparkline(params.Sparkline)
}

// WithPage adds page parameter for pagination
func (rb *MarketsRequestBuilder) WithPage(page int) *MarketsRequestBuilder {
	if page > 0 {
		rb.With("page", strconv.Itoa(page))
	}
	return rb
}

// WithPerPage adds per_page parameter
func (rb *MarketsRequestBuilder) WithPerPage(perPage int) *MarketsRequestBuilder {
	if perPage > 0 {
		rb.With("per_page", strconv.Itoa(perPage))
	}
	return rb
}

// WithOrder adds ordering parameter
func (rb *MarketsRequestBuilder) WithOrder(order string) *MarketsRequestBuilder {
	if order != "" {
		rb.With("order", order)
	}
	return rb
}

// WithSparkline sets the sparkline parameter; the board never needs sparklines
func (rb *MarketsRequestBuilder) WithSparkline(enabled bool) *MarketsRequestBuilder {
	rb.With("sparkline", strconv.FormatBool(enabled))
	return rb
}
