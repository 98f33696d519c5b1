package market_common

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestBuilder_BuildURL(t *testing.T) {
	rb := NewRequestBuilder("https://api.coingecko.com/", "/api/v3/coins/markets").
		WithCurrency("usd").
		With("page", "2")

	finalURL, err := rb.BuildURL()
	require.NoError(t, err)

	parsed, err := url.Parse(finalURL)
	require.NoError(t, err)
	assert.Equal(t, "api.coingecko.com", parsed.Host)
	assert.Equal(t, "/api/v3/coins/markets", parsed.Path)
	assert.Equal(t, "usd", parsed.Query().Get("vs_currency"))
	assert.Equal(t, "2", parsed.Query().Get("page"))
}

func TestRequestBuilder_KeepsBaseQuery(t *testing.T) {
	rb := NewRequestBuilder("https://example.com/api/ticker?pair=kwe_usdt", "")

	finalURL, err := rb.BuildURL()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/api/ticker?pair=kwe_usdt", finalURL)
}

func TestRequestBuilder_ApiKeys(t *testing.T) {
	demoURL, err := NewRequestBuilder(COINGECKO_PUBLIC_URL, "/x").WithApiKey(APIKey{Key: "demo", Type: DemoKey}).BuildURL()
	require.NoError(t, err)
	assert.Contains(t, demoURL, "x_cg_demo_api_key=demo")

	proURL, err := NewRequestBuilder(COINGECKO_PRO_URL, "/x").WithApiKey(APIKey{Key: "pro", Type: ProKey}).BuildURL()
	require.NoError(t, err)
	assert.Contains(t, proURL, "x_cg_pro_api_key=pro")

	noKeyURL, err := NewRequestBuilder(COINGECKO_PUBLIC_URL, "/x").WithApiKey(APIKey{}).BuildURL()
	require.NoError(t, err)
	assert.NotContains(t, noKeyURL, "api_key")
}

func TestRequestBuilder_Headers(t *testing.T) {
	req, err := NewRequestBuilder("https://example.com", "/v2/coin/abc").
		WithHeader("x-access-token", "secret").
		WithHeader("x-empty", "").
		Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "secret", req.Header.Get("x-access-token"))
	assert.Empty(t, req.Header.Values("x-empty"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, defaultUserAgent, req.Header.Get("User-Agent"))
}
