package cache

import "time"

// Config controls the in-memory cache of rendered API responses
type Config struct {
	Enabled bool `yaml:"enabled"`

	// TTL bounds how long a rendered response is kept; a new board version replaces it earlier
	TTL time.Duration `yaml:"ttl"`

	// CleanupInterval is how often expired responses are evicted
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// DefaultConfig returns the response cache defaults
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		TTL:             2 * time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}
