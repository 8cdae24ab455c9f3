package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	SchedulesComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedules_computed_total",
			Help: "Total number of day agendas computed",
		},
		[]string{"source"}, // cache | fresh
	)

	RoutesBuilt = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "routes_built_total",
			Help: "Total number of calculated routes built",
		},
	)

	RouteCommits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "route_commits_total",
			Help: "Total number of route commit attempts",
		},
		[]string{"outcome"}, // ok | rejected | error
	)
)
