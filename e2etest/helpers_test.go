package e2etest

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/status-im/coin-ticker/quotes"
)

// boardResponse mirrors the /api/v1/quotes body
type boardResponse struct {
	State     string              `json:"state"`
	Error     string              `json:"error"`
	UpdatedAt time.Time           `json:"updated_at"`
	Version   uint64              `json:"version"`
	Total     int                 `json:"total"`
	Quotes    []quotes.AssetQuote `json:"quotes"`
}

// getJSON performs a GET and decodes the body into out, returning the status code
func getJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err, "Should be able to make a request to %s", url)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Should be able to read response body")

	if out != nil && len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, out), "Response should be valid JSON: %s", string(body))
	}
	return resp.StatusCode
}

// tryGetJSON is getJSON for polling loops running off the test goroutine
func tryGetJSON(url string, out interface{}) bool {
	resp, err := http.Get(url)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false
	}
	return json.NewDecoder(resp.Body).Decode(out) == nil
}

// waitForBoard polls /api/v1/quotes until the board leaves the loading state
func waitForBoard(t *testing.T, env *TestEnv) (int, boardResponse) {
	t.Helper()

	maxWait := 10 * time.Second
	pollInterval := 50 * time.Millisecond
	timeout := time.Now().Add(maxWait)

	for time.Now().Before(timeout) {
		var body boardResponse
		status := getJSON(t, env.ServerBaseURL+"/api/v1/quotes", &body)
		if status != http.StatusServiceUnavailable {
			t.Logf("Board settled in state %q with %d quotes", body.State, len(body.Quotes))
			return status, body
		}
		time.Sleep(pollInterval)
	}

	t.Fatalf("Board did not leave the loading state within %v", maxWait)
	return 0, boardResponse{}
}

// quoteIDs returns the ids of list in order
func quoteIDs(list []quotes.AssetQuote) []string {
	ids := make([]string, 0, len(list))
	for _, q := range list {
		ids = append(ids, q.ID)
	}
	return ids
}

// findQuote returns the entry with id from list
func findQuote(list []quotes.AssetQuote, id string) (quotes.AssetQuote, bool) {
	for _, q := range list {
		if q.ID == id {
			return q, true
		}
	}
	return quotes.AssetQuote{}, false
}
