package market_common

import (
	"log"

	"github.com/status-im/coin-ticker/config"
)

const (
	// Base URL for public API
	COINGECKO_PUBLIC_URL = "https://api.coingecko.com"
	// Base URL for Pro API
	COINGECKO_PRO_URL = "https://pro-api.coingecko.com"

	proKeyParam  = "x_cg_pro_api_key"
	demoKeyParam = "x_cg_demo_api_key"
)

// KeyType defines the API key type
type KeyType int

const (
	// NoKey means no API key is available
	NoKey KeyType = iota
	// ProKey means using a Pro API key
	ProKey
	// DemoKey means using a demo API key
	DemoKey
)

func (k KeyType) String() string {
	switch k {
	case ProKey:
		return "pro"
	case DemoKey:
		return "demo"
	default:
		return "none"
	}
}

// APIKey represents an API key with its type
type APIKey struct {
	Key  string
	Type KeyType
}

// SelectAPIKey picks the first Pro key, then the first Demo key, else no key
func SelectAPIKey(tokens *config.APITokens) APIKey {
	if tokens == nil {
		return APIKey{Type: NoKey}
	}
	for _, key := range tokens.Tokens {
		if key != "" {
			return APIKey{Key: key, Type: ProKey}
		}
	}
	for _, key := range tokens.DemoTokens {
		if key != "" {
			return APIKey{Key: key, Type: DemoKey}
		}
	}
	return APIKey{Type: NoKey}
}

// GetApiBaseUrl returns the CoinGecko base URL for the key type, honouring config overrides
func GetApiBaseUrl(cfg *config.Config, keyType KeyType) string {
	if keyType == ProKey {
		if cfg.OverrideCoingeckoProURL != "" {
			log.Printf("CoinGecko: Using overridden Pro API URL: %s", cfg.OverrideCoingeckoProURL)
			return cfg.OverrideCoingeckoProURL
		}
		return COINGECKO_PRO_URL
	}
	if cfg.OverrideCoingeckoPublicURL != "" {
		return cfg.OverrideCoingeckoPublicURL
	}
	return COINGECKO_PUBLIC_URL
}
