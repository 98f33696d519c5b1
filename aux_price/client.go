package aux_price

import (
	"context"
	"encoding/json"
	"log"

	cm "github.com/status-im/coin-ticker/market_common"
	"github.com/status-im/coin-ticker/metrics"
)

// tickerResponse is the ticker payload: {"result": {"last": number | string}}
type tickerResponse struct {
	Result *struct {
		Last json.RawMessage `json:"last"`
	} `json:"result"`
}

// Client fetches the spot price of the auxiliary asset from its ticker endpoint
type Client struct {
	priceURL   string
	httpClient *cm.HTTPClientWithRetries
}

// NewClient creates a ticker client for priceURL
func NewClient(priceURL string, httpClient *cm.HTTPClientWithRetries) *Client {
	return &Client{
		priceURL:   priceURL,
		httpClient: httpClient,
	}
}

// NewDefaultHTTPClient builds the retrying HTTP client used for the ticker endpoint
func NewDefaultHTTPClient(opts cm.RetryOptions) *cm.HTTPClientWithRetries {
	opts.LogPrefix = "AuxPrice"
	return cm.NewHTTPClientWithRetries(opts, metrics.NewMetricsWriter(metrics.ServiceAuxPrice), nil)
}

// FetchPrice returns the last traded price. A missing, null or unparsable price
// yields 0 without error; only transport and HTTP failures are errors, and they
// match market_common.ErrFetchFailed.
func (c *Client) FetchPrice(ctx context.Context) (float64, error) {
	req, err := cm.NewRequestBuilder(c.priceURL, "").Build(ctx)
	if err != nil {
		return 0, cm.FetchFailed("aux price", err)
	}

	body, _, err := c.httpClient.ExecuteRequest(req)
	if err != nil {
		return 0, cm.FetchFailed("aux price", err)
	}

	var resp tickerResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, cm.FetchFailed("aux price", err)
	}

	if resp.Result == nil {
		log.Printf("AuxPrice: Response has no result object, using 0")
		return 0, nil
	}

	price, ok := cm.ParseLenientFloat(resp.Result.Last)
	if !ok {
		log.Printf("AuxPrice: Unparsable price %q, using 0", string(resp.Result.Last))
		return 0, nil
	}

	return price, nil
}
