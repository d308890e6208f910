// Package metrics holds the Prometheus collectors shared across the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NearbyResults counts ranked searches by outcome
	// ("found", "no_candidates", "none_within_radius", "error").
	NearbyResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotspots_nearby_results_total",
			Help: "Total number of nearby hotspot searches by outcome",
		},
		[]string{"outcome"},
	)

	// ObservationsMatched counts observations by how they were attributed.
	// Labels:
	//   - method: "id", "proximity", "dropped", "unusable"
	ObservationsMatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotspots_observations_matched_total",
			Help: "Observations attributed to hotspots by matching method",
		},
		[]string{"method"},
	)

	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotspots_upstream_requests_total",
			Help: "Requests sent to the eBird API by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hotspots_upstream_request_duration_seconds",
			Help:    "Latency of eBird API requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"endpoint"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotspots_http_requests_total",
			Help: "HTTP requests served by route pattern and status",
		},
		[]string{"route", "status"},
	)
)
