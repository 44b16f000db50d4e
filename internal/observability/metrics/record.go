package metrics

// RecordSourceAttempt records the outcome of one candidate-source attempt.
// Outcome should be one of "won", "empty" or "error".
func RecordSourceAttempt(source, outcome string) {
	SourceAttemptsTotal.WithLabelValues(source, outcome).Inc()
}

// RecordFetchRetry records a single HTTP retry against a source.
func RecordFetchRetry(source string) {
	FetchRetriesTotal.WithLabelValues(source).Inc()
}

// RecordNotification records the result of a notification delivery attempt.
func RecordNotification(channel string, outcome string) {
	NotificationsTotal.WithLabelValues(channel, outcome).Inc()
}

// RecordGuardTrip records a run affected by a safety guard
// ("min_interval" or "streak_ceiling").
func RecordGuardTrip(guard string) {
	GuardTripsTotal.WithLabelValues(guard).Inc()
}

// SetCurrentStreak publishes the streak length computed by this run.
func SetCurrentStreak(streak int) {
	CurrentStreak.Set(float64(streak))
}
