package metrics

import "time"

// RecordArticleGenerated records the result of a base article generation.
func RecordArticleGenerated(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	ArticlesGeneratedTotal.WithLabelValues(status).Inc()
}

// RecordGenerationDuration records the time taken to generate a base article.
func RecordGenerationDuration(duration time.Duration) {
	GenerationDuration.Observe(duration.Seconds())
}

// RecordTranslation records the result of a single language translation.
// Provider identifies which backend produced (or failed to produce) the
// translation, e.g. "deepl" or "openai".
func RecordTranslation(language, provider string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	TranslationsTotal.WithLabelValues(language, provider, status).Inc()
}

// RecordTranslationDuration records the time a provider took to translate one article.
func RecordTranslationDuration(provider string, duration time.Duration) {
	TranslationDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// UpdateQuotaRemaining updates the remaining character quota gauge for a provider.
func UpdateQuotaRemaining(provider string, remaining int64) {
	TranslationQuotaRemaining.WithLabelValues(provider).Set(float64(remaining))
}

// RecordEnsureJoined records a caller attaching to an in-flight generation task.
func RecordEnsureJoined() {
	EnsureTasksJoinedTotal.Inc()
}

// RecordDailyRun records the outcome of one daily content coordination run.
func RecordDailyRun(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	DailyRunsTotal.WithLabelValues(status).Inc()
}
