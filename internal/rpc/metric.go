package rpc

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	InflightRequests prometheus.Gauge
}

// NewMetrics creates the RPC metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "product_catalog",
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "Total number of handled RPC requests.",
		}, []string{"operation", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "product_catalog",
			Subsystem: "rpc",
			Name:      "request_duration_seconds",
			Help:      "Duration of RPC requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		InflightRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "product_catalog",
			Subsystem: "rpc",
			Name:      "inflight_requests",
			Help:      "Number of RPC requests being handled.",
		}),
	}

	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.InflightRequests)

	return m
}
