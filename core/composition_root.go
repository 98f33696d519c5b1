package core

import (
	"net/url"

	"github.com/status-im/coin-ticker/api"
	"github.com/status-im/coin-ticker/aux_price"
	"github.com/status-im/coin-ticker/aux_stats"
	"github.com/status-im/coin-ticker/board"
	"github.com/status-im/coin-ticker/cache"
	"github.com/status-im/coin-ticker/coingecko_markets"
	"github.com/status-im/coin-ticker/config"
	cm "github.com/status-im/coin-ticker/market_common"
)

// Components holds the wired services of one process
type Components struct {
	Cache   *cache.Service
	Markets *coingecko_markets.CoinGeckoClient
	Board   *board.Board
	Server  *api.Server
}

// NewBoard wires the data sources, the response cache and the board
func NewBoard(cfg *config.Config) *Components {
	cacheService := cache.NewService(cfg.Cache)

	limiterManager := cm.NewRateLimiterManager(cfg.RateLimits,
		hostOf(cfg.OverrideCoingeckoPublicURL), hostOf(cfg.OverrideCoingeckoProURL))
	marketsClient := coingecko_markets.NewCoinGeckoClient(cfg, limiterManager)
	fetcher := coingecko_markets.NewPaginatedFetcher(marketsClient, cfg.Markets)

	// auxiliary failures are soft; the next refresh tick is the retry
	auxOpts := cm.DefaultRetryOptions()
	auxOpts.MaxRetries = 1
	auxOpts.RequestTimeout = cfg.AuxAsset.Timeout
	priceClient := aux_price.NewClient(cfg.AuxAsset.PriceURL, aux_price.NewDefaultHTTPClient(auxOpts))

	var statsSource board.StatsSource
	if cfg.AuxAsset.StatsURL != "" {
		statsSource = aux_stats.NewClient(cfg.AuxAsset.StatsURL, cfg.AuxAsset.StatsToken, aux_stats.NewDefaultHTTPClient(auxOpts))
	}

	return &Components{
		Cache:   cacheService,
		Markets: marketsClient,
		Board:   board.NewBoard(cfg, priceClient, statsSource, fetcher),
	}
}

// Setup creates and registers all services; an empty port skips the HTTP server
func Setup(cfg *config.Config, port string) (*Registry, *Components) {
	registry := NewRegistry()

	components := NewBoard(cfg)
	registry.Register(components.Cache)
	registry.Register(components.Board)

	if port != "" {
		components.Server = api.New(port, components.Board, components.Markets, components.Cache)
		registry.Register(components.Server)
	}

	return registry, components
}

// hostOf returns the host of an override URL so it is limited like CoinGecko itself
func hostOf(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
