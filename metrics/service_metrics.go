package metrics

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "coin_ticker_"

// Service constants
const (
	ServiceMarkets       = "markets"
	ServiceAuxPrice      = "aux-price"
	ServiceAuxStats      = "aux-stats"
	ServiceBoard         = "board"
	ServiceRefresher     = "refresher"
	ServiceResponseCache = "response-cache"
)

// Refresh tick outcomes
const (
	TickUpdated   = "updated"
	TickUnchanged = "unchanged"
	TickFailed    = "failed"
	TickSkipped   = "skipped"
)

var (
	// Upstream request counter
	// Cardinality: ~15 (3 upstream services × 5 statuses)
	ServiceRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "service_requests_total",
			Help: "Total number of HTTP requests to upstream APIs per service",
		},
		[]string{"service", "status"},
	)

	// Data fetch cycle duration per service
	DataFetchCycleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "data_fetch_cycle_duration_seconds",
			Help: "Time taken to complete a full data fetch cycle",
		},
		[]string{"service"},
	)

	// Request latency per service
	RequestLatencyHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "request_latency_seconds",
			Help: "HTTP request latency by service",
		},
		[]string{"service"},
	)

	// Retry attempts counter
	ServiceRetryCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "service_retry_attempts_total",
			Help: "Total number of retry attempts per service",
		},
		[]string{"service"},
	)

	// Rate limit hits counter
	RateLimitCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "rate_limit_hits_total",
			Help: "Total number of rate limit hits per service",
		},
		[]string{"service"},
	)

	// Pages retrieved by the last markets sweep
	MarketPagesGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "market_pages_fetched",
			Help: "Number of market pages retrieved by the last sweep",
		},
	)

	// Board size
	ServiceCacheSizeGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "service_cache_size",
			Help: "Number of items held by a service",
		},
		[]string{"service"},
	)

	// Refresh ticks by outcome
	// Cardinality: 4 (updated, unchanged, failed, skipped)
	RefreshTicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "refresh_ticks_total",
			Help: "Auxiliary price refresh ticks by outcome",
		},
		[]string{"result"},
	)

	// Last known auxiliary price
	AuxPriceGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "aux_price_usd",
			Help: "Last auxiliary asset price published on the board",
		},
	)
)

// MetricsWriter provides a unified interface for recording service metrics
type MetricsWriter struct {
	serviceName string
}

// NewMetricsWriter creates a new MetricsWriter for the specified service
func NewMetricsWriter(serviceName string) *MetricsWriter {
	return &MetricsWriter{
		serviceName: serviceName,
	}
}

// GetServiceName returns the service name
func (mw *MetricsWriter) GetServiceName() string {
	return mw.serviceName
}

// RecordServiceRequest records an upstream API request
func (mw *MetricsWriter) RecordServiceRequest(status string) {
	ServiceRequestsTotal.WithLabelValues(mw.serviceName, status).Inc()
	if status == "rate_limited" {
		RateLimitCounter.WithLabelValues(mw.serviceName).Inc()
	}
}

// RecordDataFetchCycle records the duration of a data fetch cycle
func (mw *MetricsWriter) RecordDataFetchCycle(duration time.Duration) {
	DataFetchCycleDuration.WithLabelValues(mw.serviceName).Observe(duration.Seconds())
	log.Printf("Metrics: %s data fetch cycle took %.2fs", mw.serviceName, duration.Seconds())
}

// TrackDataFetchCycle starts timing a cycle; call the returned func when it ends
func (mw *MetricsWriter) TrackDataFetchCycle() func() {
	start := time.Now()
	return func() {
		mw.RecordDataFetchCycle(time.Since(start))
	}
}

// RecordRequestLatency records the latency of a single upstream request
func (mw *MetricsWriter) RecordRequestLatency(duration time.Duration) {
	RequestLatencyHistogram.WithLabelValues(mw.serviceName).Observe(duration.Seconds())
}

// RecordCacheSize records the number of items held by the service
func (mw *MetricsWriter) RecordCacheSize(size int) {
	ServiceCacheSizeGauge.WithLabelValues(mw.serviceName).Set(float64(size))
}

// RecordRetryAttempt records a retry attempt
func (mw *MetricsWriter) RecordRetryAttempt() {
	ServiceRetryCounter.WithLabelValues(mw.serviceName).Inc()
}

// RecordMarketPages records how many pages the last sweep retrieved
func (mw *MetricsWriter) RecordMarketPages(pages int) {
	MarketPagesGauge.Set(float64(pages))
}

// RecordRefreshTick records the outcome of a refresh tick
func (mw *MetricsWriter) RecordRefreshTick(result string) {
	RefreshTicksTotal.WithLabelValues(result).Inc()
}

// RecordAuxPrice records the published auxiliary price
func (mw *MetricsWriter) RecordAuxPrice(price float64) {
	AuxPriceGauge.Set(price)
}

// Implement HttpStatusHandler interface for MetricsWriter
// OnRequest records an HTTP request with its status
func (mw *MetricsWriter) OnRequest(status string) {
	mw.RecordServiceRequest(status)
}

// OnRetry records an HTTP retry attempt
func (mw *MetricsWriter) OnRetry() {
	mw.RecordRetryAttempt()
}
