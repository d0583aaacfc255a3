package service

import "sync/atomic"

// Metrics tracks autosave activity across all managers.
type Metrics struct {
	DraftWrites      int64 `json:"draft_writes"`
	DraftWriteErrors int64 `json:"draft_write_errors"`
}

var globalMetrics = &Metrics{}

// GetMetrics returns the current metrics snapshot.
func GetMetrics() Metrics {
	return Metrics{
		DraftWrites:      atomic.LoadInt64(&globalMetrics.DraftWrites),
		DraftWriteErrors: atomic.LoadInt64(&globalMetrics.DraftWriteErrors),
	}
}

// ResetMetrics resets all counters (useful for testing).
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.DraftWrites, 0)
	atomic.StoreInt64(&globalMetrics.DraftWriteErrors, 0)
}

func recordDraftWrite() {
	atomic.AddInt64(&globalMetrics.DraftWrites, 1)
}

func recordDraftWriteError() {
	atomic.AddInt64(&globalMetrics.DraftWriteErrors, 1)
	atomic.AddInt64(&globalMetrics.DraftWrites, 1)
}
