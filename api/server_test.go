package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/coin-ticker/board"
	"github.com/status-im/coin-ticker/cache"
	"github.com/status-im/coin-ticker/events"
	"github.com/status-im/coin-ticker/quotes"
)

// fakeBoard is a BoardReader whose state tests set directly
type fakeBoard struct {
	mu    sync.Mutex
	state board.State
	err   error
	snap  *quotes.Snapshot
	subs  *events.SubscriptionManager
}

func newFakeBoard() *fakeBoard {
	return &fakeBoard{subs: events.NewSubscriptionManager()}
}

func (f *fakeBoard) State() board.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeBoard) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *fakeBoard) Snapshot() *quotes.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeBoard) Quote(id string) (quotes.AssetQuote, bool) {
	snap := f.Snapshot()
	if snap == nil {
		return quotes.AssetQuote{}, false
	}
	for _, q := range snap.Quotes {
		if q.ID == id {
			return q, true
		}
	}
	return quotes.AssetQuote{}, false
}

func (f *fakeBoard) Subscribe() events.ISubscription {
	return f.subs.Subscribe()
}

func (f *fakeBoard) publish(list []quotes.AssetQuote) {
	f.mu.Lock()
	version := uint64(1)
	if f.snap != nil {
		version = f.snap.Version + 1
	}
	f.state = board.StateReady
	f.snap = &quotes.Snapshot{Quotes: list, UpdatedAt: time.Now().UTC(), Version: version}
	f.mu.Unlock()
	f.subs.Emit(context.Background())
}

type healthy bool

func (h healthy) Healthy() bool { return bool(h) }

func testQuotes() []quotes.AssetQuote {
	return []quotes.AssetQuote{
		{ID: "bitcoin", Name: "Bitcoin", Symbol: "btc", CurrentPrice: 65000, MarketCap: 1.2e12, MarketCapRank: quotes.IntPtr(1)},
		{ID: "ethereum", Name: "Ethereum", Symbol: "eth", CurrentPrice: 3500, MarketCap: 4e11, MarketCapRank: quotes.IntPtr(2)},
		{ID: "aux:kwe", Name: "KWE", Symbol: "kwe", CurrentPrice: 0.05, MarketCapRank: quotes.IntPtr(10), IsAuxiliary: true},
		{ID: "bitcoin-cash", Name: "Bitcoin Cash", Symbol: "bch", CurrentPrice: 400, MarketCap: 8e9, MarketCapRank: quotes.IntPtr(20)},
	}
}

func get(t *testing.T, handler http.Handler, target string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestQuotes_Loading(t *testing.T) {
	s := New("0", newFakeBoard(), nil, nil)

	rec := get(t, s.Handler(), "/api/v1/quotes", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"state":"loading"}`, rec.Body.String())
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestQuotes_Failed(t *testing.T) {
	fb := newFakeBoard()
	fb.state = board.StateFailed
	fb.err = errors.New("no market data: rate limited")
	s := New("0", fb, nil, nil)

	rec := get(t, s.Handler(), "/api/v1/quotes", nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"state":"failed","error":"no market data: rate limited"}`, rec.Body.String())
}

func TestQuotes_Ready(t *testing.T) {
	fb := newFakeBoard()
	fb.publish(testQuotes())
	s := New("0", fb, nil, nil)

	tests := []struct {
		name  string
		query string
		ids   []string
		total int
	}{
		{name: "all", query: "", ids: []string{"bitcoin", "ethereum", "aux:kwe", "bitcoin-cash"}, total: 4},
		{name: "filtered", query: "?q=BIT", ids: []string{"bitcoin", "bitcoin-cash"}, total: 2},
		{name: "symbol", query: "?q=kwe", ids: []string{"aux:kwe"}, total: 1},
		{name: "limited", query: "?limit=2", ids: []string{"bitcoin", "ethereum"}, total: 4},
		{name: "invalid limit ignored", query: "?limit=abc", ids: []string{"bitcoin", "ethereum", "aux:kwe", "bitcoin-cash"}, total: 4},
		{name: "no match", query: "?q=doge", ids: []string{}, total: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s.Handler(), "/api/v1/quotes"+tt.query, nil)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var resp quotesResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "ready", resp.State)
			assert.Equal(t, uint64(1), resp.Version)
			assert.Equal(t, tt.total, resp.Total)

			got := make([]string, 0, len(resp.Quotes))
			for _, q := range resp.Quotes {
				got = append(got, q.ID)
			}
			assert.Equal(t, tt.ids, got)
		})
	}
}

func TestQuotes_ETag(t *testing.T) {
	fb := newFakeBoard()
	fb.publish(testQuotes())
	s := New("0", fb, nil, nil)

	first := get(t, s.Handler(), "/api/v1/quotes", nil)
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	second := get(t, s.Handler(), "/api/v1/quotes", map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusNotModified, second.Code)
	assert.Empty(t, second.Body.String())
}

func TestQuotes_ResponseCache(t *testing.T) {
	fb := newFakeBoard()
	fb.publish(testQuotes())
	responses := cache.NewService(cache.DefaultConfig())
	s := New("0", fb, nil, responses)

	first := get(t, s.Handler(), "/api/v1/quotes?q=BIT", nil)
	require.Equal(t, http.StatusOK, first.Code)
	second := get(t, s.Handler(), "/api/v1/quotes?q=bit", nil)
	require.Equal(t, http.StatusOK, second.Code)

	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, first.Header().Get("ETag"), second.Header().Get("ETag"))
	assert.Equal(t, cache.Stats{Enabled: true, Items: 1, Hits: 1, Misses: 1}, responses.Stats())

	// a cached list still honours If-None-Match
	notModified := get(t, s.Handler(), "/api/v1/quotes?q=BIT", map[string]string{"If-None-Match": first.Header().Get("ETag")})
	assert.Equal(t, http.StatusNotModified, notModified.Code)

	updated := testQuotes()
	updated[0].CurrentPrice = 70000
	fb.publish(updated)

	rec := get(t, s.Handler(), "/api/v1/quotes?q=BIT", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp quotesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(2), resp.Version)
	require.Len(t, resp.Quotes, 2)
	assert.Equal(t, 70000.0, resp.Quotes[0].CurrentPrice)

	stats := responses.Stats()
	assert.Equal(t, uint64(2), stats.Hits)
	assert.Equal(t, uint64(2), stats.Misses)

	health := get(t, s.Handler(), "/health", nil)
	var healthResp map[string]interface{}
	require.NoError(t, json.Unmarshal(health.Body.Bytes(), &healthResp))
	assert.Contains(t, healthResp, "response_cache")
}

func TestQuotesCacheKey(t *testing.T) {
	assert.Equal(t, "quotes:v3:l0:btc", quotesCacheKey(3, "BTC", 0))
	assert.NotEqual(t, quotesCacheKey(3, "btc", 0), quotesCacheKey(4, "btc", 0))
	assert.NotEqual(t, quotesCacheKey(3, "btc", 0), quotesCacheKey(3, "btc", 1))
}

func TestQuote(t *testing.T) {
	fb := newFakeBoard()
	fb.publish(testQuotes())
	s := New("0", fb, nil, nil)

	rec := get(t, s.Handler(), "/api/v1/quotes/aux:kwe", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var quote quotes.AssetQuote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
	assert.True(t, quote.IsAuxiliary)
	assert.Equal(t, 0.05, quote.CurrentPrice)
	require.NotNil(t, quote.MarketCapRank)
	assert.Equal(t, 10, *quote.MarketCapRank)

	rec = get(t, s.Handler(), "/api/v1/quotes/dogecoin", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSummary(t *testing.T) {
	fb := newFakeBoard()
	fb.publish(testQuotes())
	s := New("0", fb, nil, nil)

	rec := get(t, s.Handler(), "/api/v1/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp summaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.Count)
	assert.InDelta(t, 1.608e12, resp.TotalMarketCap, 1)
	assert.Equal(t, "$1.61T", resp.TotalMarketCapFormatted)
}

func TestHealth(t *testing.T) {
	fb := newFakeBoard()
	s := New("0", fb, healthy(true), nil)

	rec := get(t, s.Handler(), "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","services":{"board":"loading","markets":"up"}}`, rec.Body.String())

	s = New("0", fb, healthy(false), nil)
	rec = get(t, s.Handler(), "/health", nil)
	assert.JSONEq(t, `{"status":"ok","services":{"board":"loading","markets":"unknown"}}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	s := New("0", newFakeBoard(), nil, nil)
	rec := get(t, s.Handler(), "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebSocket_SnapshotOnConnectAndPublish(t *testing.T) {
	fb := newFakeBoard()
	fb.publish(testQuotes())
	s := New("0", fb, nil, nil)

	server := httptest.NewServer(s.Handler())
	defer server.Close()
	defer s.Stop()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?q=kwe"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var msg wsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "snapshot", msg.Type)
	assert.Equal(t, "ready", msg.State)
	assert.Equal(t, uint64(1), msg.Version)
	require.Len(t, msg.Quotes, 1)
	assert.Equal(t, 0.05, msg.Quotes[0].CurrentPrice)

	require.Eventually(t, func() bool {
		return fb.subs.SubscriberCount() == 1
	}, time.Second, 5*time.Millisecond)

	updated := testQuotes()
	updated[2].CurrentPrice = 0.06
	fb.publish(updated)

	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, uint64(2), msg.Version)
	require.Len(t, msg.Quotes, 1)
	assert.Equal(t, 0.06, msg.Quotes[0].CurrentPrice)
}

func TestWebSocket_LoadingState(t *testing.T) {
	s := New("0", newFakeBoard(), nil, nil)

	server := httptest.NewServer(s.Handler())
	defer server.Close()
	defer s.Stop()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg wsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "loading", msg.State)
	assert.Empty(t, msg.Quotes)
}
