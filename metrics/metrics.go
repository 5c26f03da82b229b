// Package metrics exposes generation counters on the default prometheus
// registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stagehand_events_generated_total",
			Help: "Total number of baseline and scenario events generated",
		},
		[]string{"source"},
	)

	ScenarioEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stagehand_scenario_events_total",
			Help: "Total number of scenario-tagged events generated",
		},
		[]string{"scenario"},
	)

	SourceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stagehand_source_generation_duration_seconds",
			Help:    "Time taken to generate one source's full day range",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	SourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stagehand_source_failures_total",
			Help: "Sources that failed generation or write",
		},
		[]string{"source", "stage"},
	)
)
