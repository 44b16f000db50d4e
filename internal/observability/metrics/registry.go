// Package metrics provides centralized Prometheus metrics for the application.
//
// The process is one-shot, so there is no scrape listener; the default registry
// is still used so counters can be inspected in tests or shipped through a
// pushgateway by the surrounding deployment.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Acquisition metrics track how the fallback source chain behaves.
var (
	// SourceAttemptsTotal counts acquisition attempts by source tag and outcome
	// (won, empty, error).
	SourceAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streakwatch_source_attempts_total",
			Help: "Total acquisition attempts by candidate source and outcome",
		},
		[]string{"source", "outcome"},
	)

	// FetchRetriesTotal counts HTTP fetch retries by source tag.
	FetchRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streakwatch_fetch_retries_total",
			Help: "Total HTTP fetch retries",
		},
		[]string{"source"},
	)
)

// Streak and notification metrics.
var (
	// CurrentStreak is the no-draw streak length computed by the latest run.
	CurrentStreak = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "streakwatch_current_streak",
			Help: "No-draw streak length after the latest run",
		},
	)

	// NotificationsTotal counts outbound notifications by channel and outcome
	// (sent, failed, dry_run).
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streakwatch_notifications_total",
			Help: "Total notification deliveries by channel and outcome",
		},
		[]string{"channel", "outcome"},
	)

	// GuardTripsTotal counts runs short-circuited by a guard (interval, ceiling).
	GuardTripsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streakwatch_guard_trips_total",
			Help: "Total runs affected by a safety guard",
		},
		[]string{"guard"},
	)
)
