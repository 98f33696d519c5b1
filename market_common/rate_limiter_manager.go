package market_common

import (
	"math"
	"net/url"
	"sync"

	"golang.org/x/time/rate"

	"github.com/status-im/coin-ticker/config"
)

// IRateLimiterManager provides a way to get a rate limiter for a request URL
//
//go:generate mockgen -destination=mocks/rate_limiter_manager.go . IRateLimiterManager
type IRateLimiterManager interface {
	GetLimiterForURL(u *url.URL) *rate.Limiter
}

// Defaults in requests per minute, used when config is not provided
const (
	defaultProRPM   = 500
	defaultDemoRPM  = 30
	defaultNoKeyRPM = 30
)

// RateLimiterManager hands out one limiter per (host, key type) for the market data hosts
type RateLimiterManager struct {
	mu           sync.Mutex
	limiters     map[string]*rate.Limiter
	limitedHosts map[string]bool
	config       config.RateLimitsConfig
}

// NewRateLimiterManager creates a manager limiting the CoinGecko hosts and any extra hosts
func NewRateLimiterManager(cfg config.RateLimitsConfig, extraHosts ...string) *RateLimiterManager {
	m := &RateLimiterManager{
		limiters: make(map[string]*rate.Limiter),
		limitedHosts: map[string]bool{
			"api.coingecko.com":     true,
			"pro-api.coingecko.com": true,
		},
		config: cfg,
	}
	for _, host := range extraHosts {
		if host != "" {
			m.limitedHosts[host] = true
		}
	}
	return m
}

// GetLimiterForURL inspects the URL to determine host and key type and returns the matching limiter.
// Hosts that are not market data hosts are not limited.
func (m *RateLimiterManager) GetLimiterForURL(u *url.URL) *rate.Limiter {
	if m == nil || u == nil {
		return nil
	}

	host := u.Hostname()
	if !m.limitedHosts[host] {
		return nil
	}

	keyType := NoKey
	query := u.Query()
	if query.Get(proKeyParam) != "" {
		keyType = ProKey
	} else if query.Get(demoKeyParam) != "" {
		keyType = DemoKey
	}

	return m.getLimiter(host, keyType)
}

func (m *RateLimiterManager) getLimiter(host string, keyType KeyType) *rate.Limiter {
	mapKey := host + "|" + keyType.String()

	m.mu.Lock()
	defer m.mu.Unlock()

	if lim, ok := m.limiters[mapKey]; ok {
		return lim
	}

	settings := m.settingsFor(keyType)
	limit := rate.Limit(float64(settings.PerMinute) / 60.0)
	burst := settings.Burst
	if burst <= 0 {
		burst = defaultBurstForLimit(limit)
	}

	limiter := rate.NewLimiter(limit, burst)
	m.limiters[mapKey] = limiter
	return limiter
}

func (m *RateLimiterManager) settingsFor(keyType KeyType) config.RateLimit {
	var settings config.RateLimit
	var fallback int
	switch keyType {
	case ProKey:
		settings, fallback = m.config.Pro, defaultProRPM
	case DemoKey:
		settings, fallback = m.config.Demo, defaultDemoRPM
	default:
		settings, fallback = m.config.NoKey, defaultNoKeyRPM
	}
	if settings.PerMinute <= 0 {
		settings.PerMinute = fallback
	}
	return settings
}

func defaultBurstForLimit(limit rate.Limit) int {
	if limit <= 1.0 {
		return 1
	}
	return int(math.Ceil(float64(limit)))
}
