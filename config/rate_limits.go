package config

import "fmt"

// RateLimitsConfig sets the request budget per CoinGecko key type. Zero values fall back to defaults.
type RateLimitsConfig struct {
	Pro   RateLimit `yaml:"pro"`
	Demo  RateLimit `yaml:"demo"`
	NoKey RateLimit `yaml:"nokey"`
}

type RateLimit struct {
	PerMinute int `yaml:"per_minute"`
	Burst     int `yaml:"burst"`
}

func (c *RateLimitsConfig) Validate() error {
	for name, limit := range map[string]RateLimit{"pro": c.Pro, "demo": c.Demo, "nokey": c.NoKey} {
		if limit.PerMinute < 0 || limit.Burst < 0 {
			return fmt.Errorf("%s: per_minute and burst cannot be negative", name)
		}
	}
	return nil
}
