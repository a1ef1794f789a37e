package rpc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dashboard",
		Subsystem: "ledger",
		Name:      "requests_total",
		Help:      "Ledger API calls by operation and outcome.",
	}, []string{"operation", "outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dashboard",
		Subsystem: "ledger",
		Name:      "request_duration_seconds",
		Help:      "Ledger API call latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
)

func observe(op string, status Status, start time.Time) {
	requestsTotal.WithLabelValues(op, status.String()).Inc()
	requestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
