package config

import (
	"fmt"
	"time"
)

const (
	DefaultCurrency     = "usd"
	DefaultOrder        = "market_cap_desc"
	DefaultPerPage      = 250
	MaxPerPage          = 250
	DefaultPageFrom     = 1
	DefaultPageTo       = 4
	DefaultRequestDelay = time.Second
)

type MarketsFetcherConfig struct {
	Currency     string        `yaml:"vs_currency"`
	Order        string        `yaml:"order"`
	PerPage      int           `yaml:"per_page"`
	PageFrom     int           `yaml:"page_from"`     // First page (1-based)
	PageTo       int           `yaml:"page_to"`       // Last page (inclusive)
	RequestDelay time.Duration `yaml:"request_delay"` // Delay between page requests
	MaxRetries   int           `yaml:"max_retries"`   // Attempts per page for 5xx and transport errors, 1 = no retry
}

func (c *MarketsFetcherConfig) applyDefaults() {
	if c.Currency == "" {
		c.Currency = DefaultCurrency
	}
	if c.Order == "" {
		c.Order = DefaultOrder
	}
	if c.PerPage <= 0 {
		c.PerPage = DefaultPerPage
	}
	if c.PageFrom == 0 {
		c.PageFrom = DefaultPageFrom
	}
	if c.PageTo == 0 {
		c.PageTo = DefaultPageTo
	}
	if c.RequestDelay <= 0 {
		c.RequestDelay = DefaultRequestDelay
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 1
	}
}

// Validate validates the MarketsFetcherConfig configuration
func (c *MarketsFetcherConfig) Validate() error {
	if c.PageFrom <= 0 {
		return fmt.Errorf("page_from must be greater than 0, got %d", c.PageFrom)
	}
	if c.PageTo < c.PageFrom {
		return fmt.Errorf("page_to (%d) must be >= page_from (%d)", c.PageTo, c.PageFrom)
	}
	if c.PerPage > MaxPerPage {
		return fmt.Errorf("per_page must be at most %d, got %d", MaxPerPage, c.PerPage)
	}
	return nil
}

// Pages returns the page numbers to fetch, in order
func (c *MarketsFetcherConfig) Pages() []int {
	if c.PageTo < c.PageFrom {
		return nil
	}
	pages := make([]int, 0, c.PageTo-c.PageFrom+1)
	for page := c.PageFrom; page <= c.PageTo; page++ {
		pages = append(pages, page)
	}
	return pages
}
