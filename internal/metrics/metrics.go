// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package metrics declares the Prometheus collectors of the robdd service.
// They are registered with the default registry when the package is loaded.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheLookups counts formula cache lookups by result (hit or miss).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "robdd_cache_lookups_total",
		Help: "Total formula cache lookups by result",
	}, []string{"result"})

	// CacheEvictions counts the formulas evicted from the cache.
	CacheEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "robdd_cache_evictions_total",
		Help: "Total formulas evicted from the cache",
	})

	// Builds counts diagram builds by kind and status (ok or error).
	Builds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "robdd_builds_total",
		Help: "Total diagram builds by kind and status",
	}, []string{"kind", "status"})

	// BuildDuration tracks the time spent building a diagram.
	BuildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "robdd_build_duration_seconds",
		Help:    "Diagram build duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
	}, []string{"kind"})

	// DiagramNodes tracks the number of nodes of the built diagrams.
	DiagramNodes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "robdd_diagram_nodes",
		Help:    "Number of nodes reachable from the root of a built diagram",
		Buckets: prometheus.ExponentialBuckets(1, 2, 14),
	}, []string{"kind"})

	// SiftEvaluations tracks the number of orders evaluated by a sifting run.
	SiftEvaluations = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "robdd_sift_evaluations",
		Help:    "Number of variable orders evaluated per sifting run",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 200, 500},
	})
)

// Status returns the label used for the outcome of an operation.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
