package market_common

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net"
	"net/http"
	"time"
)

// IHttpStatusHandler is an interface for handling HTTP request statuses
type IHttpStatusHandler interface {
	// OnRequest handles a request with its status result
	OnRequest(status string)
	// OnRetry handles retry events
	OnRetry()
}

// RetryOptions configures retry behavior for HTTP requests
type RetryOptions struct {
	MaxRetries        int
	BaseBackoff       time.Duration
	LogPrefix         string
	ConnectionTimeout time.Duration // Timeout for establishing connection
	RequestTimeout    time.Duration // Total request timeout including reading response
	RetryRateLimited  bool          // Retry on 429 instead of returning ErrRateLimited immediately
}

// DefaultRetryOptions returns default retry options
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxRetries:        3,
		BaseBackoff:       1000 * time.Millisecond,
		LogPrefix:         "HTTP",
		ConnectionTimeout: 10 * time.Second,
		RequestTimeout:    30 * time.Second,
	}
}

// HTTPClientWithRetries wraps an HTTP Client with retry capabilities
type HTTPClientWithRetries struct {
	Client         *http.Client
	Opts           RetryOptions
	StatusHandler  IHttpStatusHandler
	LimiterManager IRateLimiterManager
}

// NewHTTPClientWithRetries creates a new HTTP Client with retry capabilities
func NewHTTPClientWithRetries(opts RetryOptions, handler IHttpStatusHandler, limiterManager IRateLimiterManager) *HTTPClientWithRetries {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 1
	}

	client := &http.Client{
		Timeout: opts.RequestTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		},
	}

	return &HTTPClientWithRetries{
		Client:         client,
		Opts:           opts,
		StatusHandler:  handler,
		LimiterManager: limiterManager,
	}
}

// ExecuteRequest executes an HTTP request with retry logic and returns the response body.
// A 429 response is returned as an error matching ErrRateLimited unless RetryRateLimited is set.
func (c *HTTPClientWithRetries) ExecuteRequest(req *http.Request) ([]byte, time.Duration, error) {
	var lastErr error
	ctx := req.Context()

	for attempt := 0; attempt < c.Opts.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("%s: Retry %d/%d after error: %v",
				c.Opts.LogPrefix, attempt, c.Opts.MaxRetries-1, lastErr)

			c.onRetry()

			backoffDuration := calculateBackoffWithJitter(c.Opts.BaseBackoff, attempt)
			log.Printf("%s: Waiting %.2fs before retry", c.Opts.LogPrefix, backoffDuration.Seconds())
			if err := SleepContext(ctx, backoffDuration); err != nil {
				return nil, 0, fmt.Errorf("%w: %v", ErrFetchFailed, err)
			}
		}

		if err := c.waitForLimiter(req); err != nil {
			c.onRequest("error")
			return nil, 0, fmt.Errorf("%w: rate limiter wait failed: %v", ErrFetchFailed, err)
		}

		requestStart := time.Now()
		resp, err := c.Client.Do(req)
		requestDuration := time.Since(requestStart)

		if err != nil {
			lastErr = fmt.Errorf("request failed after %.2fs: %v", requestDuration.Seconds(), err)
			c.onRequest("error")
			if ctx.Err() != nil {
				break
			}
			continue
		}

		body, err := processResponse(resp)
		resp.Body.Close()
		if err != nil {
			statusCode := resp.StatusCode
			if statusCode == http.StatusTooManyRequests {
				c.onRequest("rate_limited")
				if !c.Opts.RetryRateLimited {
					return nil, requestDuration, err
				}
			} else {
				c.onRequest("error")
			}

			if isRetryableError(statusCode) {
				lastErr = err
				continue
			}
			return nil, requestDuration, err
		}

		c.onRequest("success")
		return body, requestDuration, nil
	}

	if IsRateLimited(lastErr) {
		return nil, 0, fmt.Errorf("all %d attempts failed, last error: %w", c.Opts.MaxRetries, lastErr)
	}
	return nil, 0, fmt.Errorf("%w: all %d attempts failed, last error: %v",
		ErrFetchFailed, c.Opts.MaxRetries, lastErr)
}

func (c *HTTPClientWithRetries) waitForLimiter(req *http.Request) error {
	if c.LimiterManager == nil {
		return nil
	}
	limiter := c.LimiterManager.GetLimiterForURL(req.URL)
	if limiter == nil {
		return nil
	}
	return limiter.Wait(req.Context())
}

func (c *HTTPClientWithRetries) onRequest(status string) {
	if c.StatusHandler != nil {
		c.StatusHandler.OnRequest(status)
	}
}

func (c *HTTPClientWithRetries) onRetry() {
	if c.StatusHandler != nil {
		c.StatusHandler.OnRetry()
	}
}

// calculateBackoffWithJitter calculates backoff duration with jitter for retries
func calculateBackoffWithJitter(baseBackoff time.Duration, attempt int) time.Duration {
	if attempt <= 0 || baseBackoff <= 0 {
		return baseBackoff
	}

	multiplier := uint(1) << uint(attempt-1)
	backoff := time.Duration(float64(baseBackoff) * float64(multiplier))
	if backoff < 2 {
		return backoff
	}
	jitter := time.Duration(rand.Int63n(int64(backoff / 2)))
	return backoff + jitter
}

// processResponse reads the body of a successful response or builds a status error
func processResponse(resp *http.Response) ([]byte, error) {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &HTTPStatusError{
			StatusCode: resp.StatusCode,
			RetryAfter: resp.Header.Get("Retry-After"),
			Body:       string(body),
		}
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: error reading response: %v", ErrFetchFailed, err)
	}

	return responseBody, nil
}

// isRetryableError determines if a given HTTP status code should trigger a retry
func isRetryableError(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests ||
		statusCode == http.StatusInternalServerError ||
		statusCode == http.StatusBadGateway ||
		statusCode == http.StatusServiceUnavailable ||
		statusCode == http.StatusGatewayTimeout
}

// SleepContext waits for d or until ctx is done
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
