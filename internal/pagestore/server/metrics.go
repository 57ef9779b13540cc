package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the server's prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	pageBytes prometheus.Histogram
	rejected  prometheus.Counter
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studyverse",
			Subsystem: "pagestore",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "studyverse",
			Subsystem: "pagestore",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		pageBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "studyverse",
			Subsystem: "pagestore",
			Name:      "page_bytes",
			Help:      "Size of saved documents",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "studyverse",
			Subsystem: "pagestore",
			Name:      "rejected_documents_total",
			Help:      "Saves refused because the body was not a valid diagram document",
		}),
	}
	m.registry.MustRegister(
		m.requests,
		m.latency,
		m.pageBytes,
		m.rejected,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
