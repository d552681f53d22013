package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "search_duration_seconds",
			Help:    "Search pipeline latency in seconds.",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"status"},
	)

	searchDegraded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "search_degraded_total",
		Help: "Searches answered with a degraded empty response.",
	})

	searchResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "search_results",
		Help:    "Total matching products per search.",
		Buckets: []float64{0, 1, 5, 10, 20, 50, 100, 250, 500},
	})

	suggestRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_suggest_requests_total",
			Help: "Suggestion requests by whether any suggestion was returned.",
		},
		[]string{"result"},
	)
)
