// Package metrics publishes the matching engine's advisory counters
// through prometheus/client_golang, grounded on the teacher's
// internal/metrics package: package-level collectors, registered once,
// updated from the hot path without blocking it.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// PoolDepth reports the current live-slot count of an order pool,
	// labelled by instrument and side. Advisory only: readers must
	// tolerate transient inconsistency.
	PoolDepth = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "matchcore",
		Subsystem: "pool",
		Name:      "depth",
		Help:      "Current number of live resting-order slots taken from the pool.",
	}, []string{"instrument", "side"})

	// PoolMaxDepth reports the high-water mark of PoolDepth.
	PoolMaxDepth = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "matchcore",
		Subsystem: "pool",
		Name:      "max_depth",
		Help:      "High-water mark of pool.depth since engine start.",
	}, []string{"instrument", "side"})

	// RequestLatency times request handling (Add/Modify/Cancel/Match),
	// labelled by the request kind.
	RequestLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "matchcore",
		Subsystem: "engine",
		Name:      "request_seconds",
		Help:      "Wall time spent handling one engine request.",
		Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 12),
	}, []string{"instrument", "request"})
)

func init() {
	prometheus.MustRegister(PoolDepth, PoolMaxDepth, RequestLatency)
}

// TimeCounter records a start time and, on Observe, feeds the elapsed
// duration into RequestLatency. Mirrors the teacher's
// internal/metrics.TimeCounter shape (hide the start time, avoid
// duplicating label values at every call site).
type TimeCounter struct {
	instrument, request string
	start                time.Time
}

// NewTimeCounter starts timing a request for the given instrument label.
func NewTimeCounter(instrument, request string) *TimeCounter {
	return &TimeCounter{instrument: instrument, request: request, start: time.Now()}
}

// Observe records the elapsed time since NewTimeCounter into
// RequestLatency.
func (t *TimeCounter) Observe() {
	RequestLatency.WithLabelValues(t.instrument, t.request).Observe(time.Since(t.start).Seconds())
}
