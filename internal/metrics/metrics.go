// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hvacops"

var (
	// HTTPRequests counts handled requests.
	// Labels: method, route (gin FullPath), status
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests by route and status",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "route"})

	// JobsCreated counts created jobs.
	// Labels: type, status (PENDING or SCHEDULED)
	JobsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "jobs",
		Name:      "created_total",
		Help:      "Jobs created by type and initial status",
	}, []string{"type", "status"})

	JobNumberRetries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "jobs",
		Name:      "number_retries_total",
		Help:      "Job inserts retried after a job number collision",
	})

	// LeadsCreated counts leads by normalized source.
	LeadsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "leads",
		Name:      "created_total",
		Help:      "Leads created by source",
	}, []string{"source"})

	// ServiceRequests counts public submissions.
	// Labels: outcome (accepted, rejected, failed)
	ServiceRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "service_requests",
		Name:      "submitted_total",
		Help:      "Service request submissions by outcome",
	}, []string{"outcome"})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the per-client rate limiter",
	})

	DispatchClients = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "dispatch",
		Name:      "clients",
		Help:      "Connected dispatch board clients",
	})

	DispatchDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dispatch",
		Name:      "dropped_events_total",
		Help:      "Events skipped for clients whose send buffer was full",
	})
)
