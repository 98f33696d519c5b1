package market_common

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const defaultUserAgent = "Mozilla/5.0 Coin-Ticker"

// buildURL safely combines a base URL with a path
func buildURL(baseURL, path string) string {
	if path == "" {
		return baseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	trimmedPath := strings.TrimLeft(path, "/")

	return baseURL + "/" + trimmedPath
}

// RequestBuilder implements the Builder pattern for upstream API requests
type RequestBuilder struct {
	baseURL    string
	httpMethod string
	apiPath    string
	params     url.Values
	apiKey     APIKey
	userAgent  string
	headers    map[string]string
}

// NewRequestBuilder creates a new request builder for baseURL + apiPath.
// Query parameters already present in baseURL are kept.
func NewRequestBuilder(baseURL, apiPath string) *RequestBuilder {
	rb := &RequestBuilder{
		baseURL:    baseURL,
		apiPath:    apiPath,
		httpMethod: http.MethodGet,
		params:     url.Values{},
		headers:    make(map[string]string),
		userAgent:  defaultUserAgent,
	}

	rb.headers["Accept"] = "application/json"

	return rb
}

// With sets a query parameter
func (rb *RequestBuilder) With(key, value string) *RequestBuilder {
	rb.params.Set(key, value)
	return rb
}

// WithCurrency adds vs_currency parameter
func (rb *RequestBuilder) WithCurrency(currency string) *RequestBuilder {
	if currency != "" {
		rb.params.Set("vs_currency", currency)
	}
	return rb
}

// WithApiKey sets the CoinGecko API key, sent as a query parameter
func (rb *RequestBuilder) WithApiKey(key APIKey) *RequestBuilder {
	if key.Key != "" {
		rb.apiKey = key
	}
	return rb
}

// WithHeader adds a custom HTTP header; empty values are skipped
func (rb *RequestBuilder) WithHeader(name, value string) *RequestBuilder {
	if value != "" {
		rb.headers[name] = value
	}
	return rb
}

// WithUserAgent sets the User-Agent header
func (rb *RequestBuilder) WithUserAgent(userAgent string) *RequestBuilder {
	rb.userAgent = userAgent
	return rb
}

// BuildURL builds the complete URL for the request
func (rb *RequestBuilder) BuildURL() (string, error) {
	parsed, err := url.Parse(buildURL(rb.baseURL, rb.apiPath))
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", rb.baseURL, err)
	}

	query := parsed.Query()
	for key, values := range rb.params {
		for _, value := range values {
			query.Set(key, value)
		}
	}

	switch rb.apiKey.Type {
	case ProKey:
		query.Set(proKeyParam, rb.apiKey.Key)
	case DemoKey:
		query.Set(demoKeyParam, rb.apiKey.Key)
	}

	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

// Build creates an http.Request bound to ctx
func (rb *RequestBuilder) Build(ctx context.Context) (*http.Request, error) {
	finalURL, err := rb.BuildURL()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, rb.httpMethod, finalURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", rb.userAgent)
	for key, value := range rb.headers {
		req.Header.Set(key, value)
	}

	return req, nil
}
