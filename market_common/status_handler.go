package market_common

import "github.com/status-im/coin-ticker/metrics"

// NewStatusHandler returns the metrics writer of service as a status handler
func NewStatusHandler(service string) IHttpStatusHandler {
	return metrics.NewMetricsWriter(service)
}
