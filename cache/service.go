package cache

import (
	"context"
	"log"
	"time"

	"github.com/status-im/coin-ticker/metrics"
)

// Service caches rendered API responses between board updates.
// When disabled every Get misses and Set is a no-op.
type Service struct {
	config  Config
	memory  *Memory
	metrics *metrics.MetricsWriter
}

// Stats is a point-in-time view of the response cache
type Stats struct {
	Enabled bool   `json:"enabled"`
	Items   int    `json:"items"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
}

func NewService(config Config) *Service {
	s := &Service{
		config:  config,
		metrics: metrics.NewMetricsWriter(metrics.ServiceResponseCache),
	}
	if config.Enabled {
		s.memory = NewMemory(config.TTL, config.CleanupInterval)
		s.memory.OnEvicted(func(key string) {
			s.metrics.RecordCacheSize(s.memory.Len())
		})
	}
	return s
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if !s.config.Enabled {
		log.Printf("ResponseCache: Disabled, every request renders its response")
		return nil
	}
	log.Printf("ResponseCache: Responses are reused for up to %v", s.config.TTL)
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	if s.memory == nil {
		return
	}
	s.memory.Flush()
	s.metrics.RecordCacheSize(0)
}

func (s *Service) Get(key string) ([]byte, bool) {
	if s.memory == nil {
		return nil, false
	}
	return s.memory.Get(key)
}

func (s *Service) Set(key string, data []byte, ttl time.Duration) {
	if s.memory == nil {
		return
	}
	s.memory.Set(key, data, ttl)
	s.metrics.RecordCacheSize(s.memory.Len())
}

func (s *Service) Stats() Stats {
	stats := Stats{Enabled: s.memory != nil}
	if s.memory != nil {
		stats.Items = s.memory.Len()
		stats.Hits = s.memory.Hits()
		stats.Misses = s.memory.Misses()
	}
	return stats
}
