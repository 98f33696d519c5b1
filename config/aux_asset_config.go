package config

import (
	"fmt"
	"time"
)

const (
	DefaultAuxAssetID      = "aux:kwe"
	DefaultAuxDeclaredRank = 300
	DefaultAuxPriceURL     = "https://kwepriceticker.com/api/price"
	DefaultAuxTimeout      = 10 * time.Second
)

// AuxAssetConfig describes the single asset merged into the board from the auxiliary sources
type AuxAssetConfig struct {
	ID     string `yaml:"id"` // Synthetic id, must not collide with CoinGecko ids
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
	Image  string `yaml:"image"`

	DeclaredRank int `yaml:"declared_rank"` // Rank reported for the asset; it is inserted after every coin ranked at or above it

	PriceURL   string        `yaml:"price_url"`
	StatsURL   string        `yaml:"stats_url"`   // Empty disables the stats source
	StatsToken string        `yaml:"stats_token"` // Optional x-access-token
	Timeout    time.Duration `yaml:"timeout"`
}

func (c *AuxAssetConfig) applyDefaults() {
	if c.ID == "" {
		c.ID = DefaultAuxAssetID
	}
	if c.Name == "" {
		c.Name = "KWE"
	}
	if c.Symbol == "" {
		c.Symbol = "kwe"
	}
	if c.DeclaredRank == 0 {
		c.DeclaredRank = DefaultAuxDeclaredRank
	}
	if c.PriceURL == "" {
		c.PriceURL = DefaultAuxPriceURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultAuxTimeout
	}
}

func (c *AuxAssetConfig) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("id cannot be empty")
	}
	if c.DeclaredRank <= 0 {
		return fmt.Errorf("declared_rank must be greater than 0, got %d", c.DeclaredRank)
	}
	return nil
}

// RefreshConfig configures the periodic auxiliary price refresh
type RefreshConfig struct {
	Interval time.Duration `yaml:"interval"`
}

func (c *RefreshConfig) applyDefaults() {
	if c.Interval == 0 {
		c.Interval = 30 * time.Second
	}
}

func (c *RefreshConfig) Validate() error {
	if c.Interval < 0 {
		return fmt.Errorf("interval must be greater than 0")
	}
	return nil
}
