package market_common

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrFetchFailed marks a source that did not deliver usable data
	ErrFetchFailed = errors.New("fetch failed")
	// ErrRateLimited marks a source that answered with HTTP 429
	ErrRateLimited = errors.New("rate limited")
)

// HTTPStatusError is returned for non-2xx responses
type HTTPStatusError struct {
	StatusCode int
	RetryAfter string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e.StatusCode == http.StatusTooManyRequests {
		return fmt.Sprintf("rate limit exceeded (status %d), retry after %s: %s", e.StatusCode, e.RetryAfter, e.Body)
	}
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}

// Is lets errors.Is classify status errors as ErrRateLimited or ErrFetchFailed
func (e *HTTPStatusError) Is(target error) bool {
	switch target {
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	case ErrFetchFailed:
		return e.StatusCode != http.StatusTooManyRequests
	}
	return false
}

// IsRateLimited reports whether err was caused by an HTTP 429
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// FetchFailed wraps err so that it matches ErrFetchFailed
func FetchFailed(source string, err error) error {
	if errors.Is(err, ErrFetchFailed) {
		return fmt.Errorf("%s: %w", source, err)
	}
	return fmt.Errorf("%s: %w: %v", source, ErrFetchFailed, err)
}
