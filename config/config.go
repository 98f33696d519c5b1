package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/status-im/coin-ticker/cache"
)

// StatsTokenEnv is the environment variable consulted for the stats access token
const StatsTokenEnv = "COINRANKING_API_KEY"

type Config struct {
	TokensFile string     `yaml:"tokens_file"`
	APITokens  *APITokens `yaml:"-"`

	Markets    MarketsFetcherConfig `yaml:"markets"`
	AuxAsset   AuxAssetConfig       `yaml:"aux_asset"`
	Refresh    RefreshConfig        `yaml:"refresh"`
	RateLimits RateLimitsConfig     `yaml:"rate_limits"`
	Cache      cache.Config         `yaml:"cache"`

	OverrideCoingeckoPublicURL string `yaml:"override_coingecko_public_url"`
	OverrideCoingeckoProURL    string `yaml:"override_coingecko_pro_url"`
}

// LoadConfig reads the yaml config at path, loads API tokens and applies defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseConfig(data)
}

// ParseConfig builds a Config from raw yaml
func ParseConfig(data []byte) (*Config, error) {
	config := Config{Cache: cache.DefaultConfig()}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.TokensFile != "" {
		apiTokens, err := LoadAPITokens(config.TokensFile)
		if err != nil {
			log.Printf("Warning: Error loading API tokens from %s: %v. Using public API without authentication.",
				config.TokensFile, err)
			config.APITokens = &APITokens{Tokens: []string{}}
		} else {
			config.APITokens = apiTokens
		}
	} else {
		config.APITokens = &APITokens{Tokens: []string{}}
	}

	config.ApplyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns a configuration with every default applied
func Default() *Config {
	config := &Config{
		APITokens: &APITokens{Tokens: []string{}},
		Cache:     cache.DefaultConfig(),
	}
	config.ApplyDefaults()
	return config
}

// ApplyDefaults fills zero values with defaults
func (c *Config) ApplyDefaults() {
	c.Markets.applyDefaults()
	c.AuxAsset.applyDefaults()
	c.Refresh.applyDefaults()

	if c.AuxAsset.StatsToken == "" {
		if token := os.Getenv(StatsTokenEnv); token != "" {
			c.AuxAsset.StatsToken = token
		} else if c.APITokens != nil && c.APITokens.StatsToken != "" {
			c.AuxAsset.StatsToken = c.APITokens.StatsToken
		}
	}
}

// Validate checks every section
func (c *Config) Validate() error {
	if err := c.Markets.Validate(); err != nil {
		return fmt.Errorf("markets: %w", err)
	}
	if err := c.AuxAsset.Validate(); err != nil {
		return fmt.Errorf("aux_asset: %w", err)
	}
	if err := c.Refresh.Validate(); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	if err := c.RateLimits.Validate(); err != nil {
		return fmt.Errorf("rate_limits: %w", err)
	}
	return nil
}
