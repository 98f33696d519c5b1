package e2etest

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

const (
	MarketsPath = "/api/v3/coins/markets"
	PricePath   = "/aux/price"
	StatsPath   = "/aux/stats"
)

// MarketCoin is one entry served by the mock markets endpoint
type MarketCoin struct {
	ID                       string   `json:"id"`
	Symbol                   string   `json:"symbol"`
	Name                     string   `json:"name"`
	Image                    string   `json:"image"`
	CurrentPrice             float64  `json:"current_price"`
	MarketCap                float64  `json:"market_cap"`
	MarketCapRank            *int     `json:"market_cap_rank"`
	TotalVolume              float64  `json:"total_volume"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
}

// MockServer stands in for the CoinGecko markets endpoint and both auxiliary endpoints
type MockServer struct {
	server *httptest.Server

	mu             sync.RWMutex
	pages          map[int][]MarketCoin
	rateLimitFrom  int // pages >= this answer 429, 0 disables
	price          string
	priceStatus    int
	statsBody      string
	statsStatus    int
	requests       map[string]int
	pageRequests   []int
	lastStatsToken string
}

// NewMockServer creates a mock upstream with two pages of coins and healthy aux endpoints
func NewMockServer() *MockServer {
	ms := &MockServer{
		pages: map[int][]MarketCoin{
			1: {
				coin("bitcoin", "btc", "Bitcoin", 50000, 1),
				coin("ethereum", "eth", "Ethereum", 3000, 2),
			},
			2: {
				coin("tether", "usdt", "Tether", 1, 3),
				coin("bitcoin-cash", "bch", "Bitcoin Cash", 400, 4),
			},
		},
		price:       `"0.0125"`,
		priceStatus: http.StatusOK,
		statsBody:   `{"data":{"coin":{"marketCap":"1250000","change":"-1.5","24hVolume":"50000"}}}`,
		statsStatus: http.StatusOK,
		requests:    make(map[string]int),
	}

	ms.server = httptest.NewServer(http.HandlerFunc(ms.handleRequest))
	return ms
}

func coin(id, symbol, name string, price float64, rank int) MarketCoin {
	change := 1.5
	return MarketCoin{
		ID:                       id,
		Symbol:                   symbol,
		Name:                     name,
		Image:                    "https://example.com/" + id + ".png",
		CurrentPrice:             price,
		MarketCap:                price * 1000000,
		MarketCapRank:            &rank,
		TotalVolume:              price * 1000,
		PriceChangePercentage24h: &change,
	}
}

// GetURL returns the base URL of the mock server
func (ms *MockServer) GetURL() string {
	return ms.server.URL
}

// Close shuts the mock server down
func (ms *MockServer) Close() {
	ms.server.Close()
}

// SetPrice sets the raw JSON value served as result.last
func (ms *MockServer) SetPrice(raw string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.price = raw
}

// SetPriceStatus makes the price endpoint answer with status
func (ms *MockServer) SetPriceStatus(status int) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.priceStatus = status
}

// SetStatsStatus makes the stats endpoint answer with status
func (ms *MockServer) SetStatsStatus(status int) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.statsStatus = status
}

// RateLimitFrom makes every page >= page answer 429
func (ms *MockServer) RateLimitFrom(page int) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.rateLimitFrom = page
}

// SetPage replaces the coins served for page
func (ms *MockServer) SetPage(page int, coins []MarketCoin) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.pages[page] = coins
}

// Requests returns how many requests hit path
func (ms *MockServer) Requests(path string) int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.requests[path]
}

// PageRequests returns the requested page numbers in arrival order
func (ms *MockServer) PageRequests() []int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return append([]int(nil), ms.pageRequests...)
}

// LastStatsToken returns the x-access-token of the last stats request
func (ms *MockServer) LastStatsToken() string {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.lastStatsToken
}

// handleRequest processes incoming requests and returns mock data
func (ms *MockServer) handleRequest(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	ms.mu.Lock()
	ms.requests[path]++
	ms.mu.Unlock()

	switch {
	case strings.HasPrefix(path, MarketsPath):
		ms.handleMarkets(w, r)
	case path == PricePath:
		ms.handlePrice(w)
	case path == StatsPath:
		ms.handleStats(w, r)
	default:
		log.Printf("MockServer: Path not found: %s", path)
		http.NotFound(w, r)
	}
}

func (ms *MockServer) handleMarkets(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}

	ms.mu.Lock()
	ms.pageRequests = append(ms.pageRequests, page)
	limited := ms.rateLimitFrom > 0 && page >= ms.rateLimitFrom
	coins := ms.pages[page]
	ms.mu.Unlock()

	if limited {
		http.Error(w, `{"status":{"error_code":429,"error_message":"rate limited"}}`, http.StatusTooManyRequests)
		return
	}

	if coins == nil {
		coins = []MarketCoin{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(coins); err != nil {
		log.Printf("MockServer: Failed to encode page %d: %v", page, err)
	}
}

func (ms *MockServer) handlePrice(w http.ResponseWriter) {
	ms.mu.RLock()
	status, price := ms.priceStatus, ms.price
	ms.mu.RUnlock()

	if status != http.StatusOK {
		http.Error(w, "unavailable", status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"result":{"last":%s}}`, price)
}

func (ms *MockServer) handleStats(w http.ResponseWriter, r *http.Request) {
	ms.mu.Lock()
	ms.lastStatsToken = r.Header.Get("x-access-token")
	status, body := ms.statsStatus, ms.statsBody
	ms.mu.Unlock()

	if status != http.StatusOK {
		http.Error(w, "unavailable", status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, body)
}
