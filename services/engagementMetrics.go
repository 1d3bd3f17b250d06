package services

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// MetricsRegistry holds the engagement collectors exposed on /metrics.
	MetricsRegistry = prometheus.NewRegistry()

	engagementRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prayerwall",
			Subsystem: "engagement",
			Name:      "runs_total",
			Help:      "Engagement runs by event and result.",
		},
		[]string{"event", "result"},
	)

	badgesAwarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prayerwall",
			Subsystem: "engagement",
			Name:      "badge_awards_total",
			Help:      "Badge award attempts that reached the store without error, by criteria.",
		},
		[]string{"criteria"},
	)

	notificationsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prayerwall",
			Subsystem: "engagement",
			Name:      "notifications_total",
			Help:      "Notifications created for request owners, by event.",
		},
		[]string{"event"},
	)
)

func init() {
	MetricsRegistry.MustRegister(engagementRuns, badgesAwarded, notificationsCreated)
}

// MetricsHandler exposes the engagement metrics in the Prometheus text format.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(MetricsRegistry, promhttp.HandlerOpts{})
}

func recordOutcome(outcome Outcome) {
	result := "ok"
	switch {
	case outcome.Failed():
		result = "failed"
	case outcome.Skipped:
		result = "skipped"
	}
	engagementRuns.WithLabelValues(string(outcome.Event), result).Inc()

	for _, criteria := range outcome.Awarded {
		badgesAwarded.WithLabelValues(criteria).Inc()
	}
	if outcome.Notified {
		notificationsCreated.WithLabelValues(string(outcome.Event)).Inc()
	}
}
