// Package metrics defines the Prometheus collectors exported by the bundler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BundleBuildCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bundler_bundle_build_count",
			Help: "Total number of times a bundle has been built",
		},
		[]string{"bundle"},
	)

	BundleBuildFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bundler_bundle_build_failed",
			Help: "Number of times a bundle has failed to build",
		},
		[]string{"bundle", "error_type"},
	)

	BundleBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bundler_bundle_build_duration_seconds",
			Help:    "Bundle build duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"bundle"},
	)

	LastBundleBuildEnd = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bundler_last_bundle_build_end_timestamp",
			Help: "Unix timestamp of when the last bundle build ended",
		},
		[]string{"bundle"},
	)

	BundleSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bundler_bundle_size_bytes",
			Help: "Size of the most recently built bundle in bytes",
		},
		[]string{"bundle"},
	)

	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bundler_cache_requests_total",
			Help: "Bundle requests by cache outcome (hit, miss)",
		},
		[]string{"bundle", "result"},
	)

	Invalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bundler_invalidations_total",
			Help: "Number of cache invalidations triggered by file changes",
		},
		[]string{"bundle"},
	)

	MinifyFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bundler_minify_failed_total",
			Help: "Number of times minification failed and unminified output was served",
		},
		[]string{"bundle"},
	)

	StyleCompilations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bundler_style_compilations_total",
			Help: "Number of style compiler invocations by outcome (ok, error)",
		},
		[]string{"result"},
	)
)

