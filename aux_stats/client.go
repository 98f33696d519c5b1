package aux_stats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	cm "github.com/status-im/coin-ticker/market_common"
	"github.com/status-im/coin-ticker/metrics"
)

// AccessTokenHeader carries the optional stats API token
const AccessTokenHeader = "x-access-token"

// Stats holds the market statistics of the auxiliary asset
type Stats struct {
	MarketCap float64 `json:"market_cap"`
	Change24h float64 `json:"change_24h"`
	Volume24h float64 `json:"volume_24h"`
}

// statsResponse is the analytics payload: {"data": {"coin": {...}}}
type statsResponse struct {
	Data *struct {
		Coin *struct {
			MarketCap json.RawMessage `json:"marketCap"`
			Change    json.RawMessage `json:"change"`
			Volume24h json.RawMessage `json:"24hVolume"`
		} `json:"coin"`
	} `json:"data"`
}

// Client fetches market cap, 24h change and 24h volume for the auxiliary asset
type Client struct {
	statsURL    string
	accessToken string
	httpClient  *cm.HTTPClientWithRetries
}

// NewClient creates a stats client; accessToken may be empty
func NewClient(statsURL, accessToken string, httpClient *cm.HTTPClientWithRetries) *Client {
	return &Client{
		statsURL:    statsURL,
		accessToken: accessToken,
		httpClient:  httpClient,
	}
}

// NewDefaultHTTPClient builds the retrying HTTP client used for the stats endpoint
func NewDefaultHTTPClient(opts cm.RetryOptions) *cm.HTTPClientWithRetries {
	opts.LogPrefix = "AuxStats"
	return cm.NewHTTPClientWithRetries(opts, metrics.NewMetricsWriter(metrics.ServiceAuxStats), nil)
}

// FetchStats fetches the stats. Each field falls back to 0 on its own when it
// cannot be parsed; HTTP failures and a missing data.coin object match
// market_common.ErrFetchFailed.
func (c *Client) FetchStats(ctx context.Context) (Stats, error) {
	if c.accessToken == "" {
		log.Printf("AuxStats: No access token configured, requesting without one")
	}

	req, err := cm.NewRequestBuilder(c.statsURL, "").
		WithHeader(AccessTokenHeader, c.accessToken).
		Build(ctx)
	if err != nil {
		return Stats{}, cm.FetchFailed("aux stats", err)
	}

	body, _, err := c.httpClient.ExecuteRequest(req)
	if err != nil {
		return Stats{}, cm.FetchFailed("aux stats", err)
	}

	var resp statsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Stats{}, cm.FetchFailed("aux stats", err)
	}
	if resp.Data == nil || resp.Data.Coin == nil {
		return Stats{}, cm.FetchFailed("aux stats", fmt.Errorf("response has no data.coin object"))
	}

	coin := resp.Data.Coin
	return Stats{
		MarketCap: cm.LenientFloatOrZero(coin.MarketCap),
		Change24h: cm.LenientFloatOrZero(coin.Change),
		Volume24h: cm.LenientFloatOrZero(coin.Volume24h),
	}, nil
}
