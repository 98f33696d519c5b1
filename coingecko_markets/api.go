package coingecko_markets

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/status-im/coin-ticker/config"
	cm "github.com/status-im/coin-ticker/market_common"
	"github.com/status-im/coin-ticker/metrics"
	"github.com/status-im/coin-ticker/quotes"
)

//go:generate mockgen -destination=mocks/api_client.go . APIClient

// APIClient defines interface for API operations
type APIClient interface {
	// FetchPage fetches a single page of data with given parameters
	FetchPage(ctx context.Context, params MarketsParams) ([]quotes.AssetQuote, error)
	// Healthy reports whether at least one page was fetched successfully
	Healthy() bool
}

// CoinGeckoClient implements APIClient for CoinGecko
type CoinGeckoClient struct {
	baseURL         string
	apiKey          cm.APIKey
	httpClient      *cm.HTTPClientWithRetries
	successfulFetch atomic.Bool // Flag indicating if at least one fetch was successful
}

// NewCoinGeckoClient creates a new CoinGecko API client
func NewCoinGeckoClient(cfg *config.Config, limiterManager cm.IRateLimiterManager) *CoinGeckoClient {
	retryOpts := cm.DefaultRetryOptions()
	retryOpts.LogPrefix = "CoinGecko"
	retryOpts.MaxRetries = cfg.Markets.MaxRetries

	metricsWriter := metrics.NewMetricsWriter(metrics.ServiceMarkets)
	apiKey := cm.SelectAPIKey(cfg.APITokens)

	return &CoinGeckoClient{
		baseURL:    cm.GetApiBaseUrl(cfg, apiKey.Type),
		apiKey:     apiKey,
		httpClient: cm.NewHTTPClientWithRetries(retryOpts, metricsWriter, limiterManager),
	}
}

// NewCoinGeckoClientWithHTTP creates a client against an explicit base URL and HTTP client
func NewCoinGeckoClientWithHTTP(baseURL string, apiKey cm.APIKey, httpClient *cm.HTTPClientWithRetries) *CoinGeckoClient {
	return &CoinGeckoClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// Healthy checks if the API has had at least one successful fetch
func (c *CoinGeckoClient) Healthy() bool {
	return c.successfulFetch.Load()
}

// FetchPage fetches a single page. A 429 answer matches market_common.ErrRateLimited,
// any other failure matches market_common.ErrFetchFailed.
func (c *CoinGeckoClient) FetchPage(ctx context.Context, params MarketsParams) ([]quotes.AssetQuote, error) {
	request, err := NewMarketRequestBuilder(c.baseURL).
		WithParams(params).
		WithApiKey(c.apiKey).
		Build(ctx)
	if err != nil {
		log.Printf("CoinGecko: Error building request with key type %v: %v", c.apiKey.Type, err)
		return nil, cm.FetchFailed("markets", err)
	}

	body, duration, err := c.httpClient.ExecuteRequest(request)
	if err != nil {
		if cm.IsRateLimited(err) {
			return nil, err
		}
		return nil, cm.FetchFailed("markets", err)
	}

	log.Printf("CoinGecko: Request successful for page %d with key type %v in %.2fs",
		params.Page, c.apiKey.Type, duration.Seconds())

	items, err := ConvertMarketsResponse(body)
	if err != nil {
		log.Printf("CoinGecko: Error parsing JSON response: %v", err)
		return nil, cm.FetchFailed("markets", err)
	}

	log.Printf("CoinGecko: Successfully processed page %d with %d items", params.Page, len(items))
	c.successfulFetch.Store(true)

	return items, nil
}
