package generation

import (
	"sync/atomic"
	"time"
)

// Metrics tracks upstream generation calls
type Metrics struct {
	Calls     int64 `json:"calls"`
	Errors    int64 `json:"errors"`
	LatencyNS int64 `json:"latency_ns"`
}

var globalMetrics = &Metrics{}

// GetMetrics returns the current metrics snapshot
func GetMetrics() Metrics {
	return Metrics{
		Calls:     atomic.LoadInt64(&globalMetrics.Calls),
		Errors:    atomic.LoadInt64(&globalMetrics.Errors),
		LatencyNS: atomic.LoadInt64(&globalMetrics.LatencyNS),
	}
}

// ResetMetrics resets all metrics (useful for testing)
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.Calls, 0)
	atomic.StoreInt64(&globalMetrics.Errors, 0)
	atomic.StoreInt64(&globalMetrics.LatencyNS, 0)
}

// recordCall records an upstream generation call
func recordCall(duration time.Duration, err error) {
	atomic.AddInt64(&globalMetrics.Calls, 1)
	atomic.AddInt64(&globalMetrics.LatencyNS, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&globalMetrics.Errors, 1)
	}
}
