// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Content pipeline metrics track article generation and translation
var (
	// ArticlesGeneratedTotal counts base article generations by status
	ArticlesGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_generated_total",
			Help: "Total number of base article generations by status (success/failure)",
		},
		[]string{"status"},
	)

	// GenerationDuration measures article generation duration in seconds
	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "article_generation_duration_seconds",
			Help:    "Article generation duration in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
		},
	)

	// TranslationsTotal counts translation operations by language, provider, and status
	TranslationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_translations_total",
			Help: "Total number of article translations by language, provider and status",
		},
		[]string{"language", "provider", "status"},
	)

	// TranslationDuration measures translation duration in seconds per provider
	TranslationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "article_translation_duration_seconds",
			Help:    "Article translation duration in seconds",
			Buckets: []float64{0.5, 1, 5, 15, 30, 60, 120},
		},
		[]string{"provider"},
	)

	// TranslationQuotaRemaining tracks the primary provider's remaining character quota
	TranslationQuotaRemaining = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "translation_quota_remaining_characters",
			Help: "Remaining character quota reported by a translation provider",
		},
		[]string{"provider"},
	)

	// EnsureTasksJoinedTotal counts callers that attached to an already
	// in-flight generation task instead of starting a new one
	EnsureTasksJoinedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ensure_tasks_joined_total",
			Help: "Total number of ensure calls that joined an in-flight generation task",
		},
	)

	// DailyRunsTotal counts whole-day content coordination runs by status
	DailyRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "daily_content_runs_total",
			Help: "Total number of daily content coordination runs by status (success/failure)",
		},
		[]string{"status"},
	)
)
