// Package metric holds the Prometheus instruments for the RPC surface.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zerus",
		Subsystem: "rpc",
		Name:      "requests_total",
		Help:      "RPC requests by procedure and result code.",
	}, []string{"procedure", "code"})

	RequestDurationSec = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "zerus",
		Subsystem: "rpc",
		Name:      "request_duration_sec",
		Help:      "RPC handler latency by procedure.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
	}, []string{"procedure"})

	ConversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zerus",
		Subsystem: "codespace",
		Name:      "conversions_total",
		Help:      "Code point conversions by encoding form.",
	}, []string{"form"})
)
