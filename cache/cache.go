package cache

import "time"

// Cache stores raw payloads by key
type Cache interface {
	// Get returns the payload for key and whether it was found
	Get(key string) ([]byte, bool)

	// Set stores data under key; a zero ttl uses the cache's default expiration
	Set(key string, data []byte, ttl time.Duration)
}
