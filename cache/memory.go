package cache

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is a go-cache backed Cache that counts hits and misses
type Memory struct {
	items  *gocache.Cache
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewMemory creates a cache whose entries live for ttl unless Set overrides it
func NewMemory(ttl, cleanupInterval time.Duration) *Memory {
	return &Memory{
		items: gocache.New(ttl, cleanupInterval),
	}
}

// OnEvicted registers fn to run when an entry expires or is deleted
func (m *Memory) OnEvicted(fn func(key string)) {
	m.items.OnEvicted(func(key string, _ interface{}) {
		fn(key)
	})
}

func (m *Memory) Get(key string) ([]byte, bool) {
	value, found := m.items.Get(key)
	data, ok := value.([]byte)
	if !found || !ok {
		m.misses.Add(1)
		return nil, false
	}
	m.hits.Add(1)
	return data, true
}

func (m *Memory) Set(key string, data []byte, ttl time.Duration) {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	m.items.Set(key, data, ttl)
}

// Len returns the number of entries, including expired ones not yet evicted
func (m *Memory) Len() int {
	return m.items.ItemCount()
}

// Flush drops every entry without running eviction callbacks
func (m *Memory) Flush() {
	m.items.Flush()
}

func (m *Memory) Hits() uint64 {
	return m.hits.Load()
}

func (m *Memory) Misses() uint64 {
	return m.misses.Load()
}
