// Package worker holds the runtime pieces of the daily scheduler process:
// configuration, the cron job wiring, and the health endpoint.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"daily-wisdom/internal/pkg/config"
)

// Config controls the daily scheduler process.
// All fields have defaults and the loader is fail-open, so the worker starts
// even when the environment holds invalid values.
type Config struct {
	// CronSchedule is the 5-field cron expression for the daily run.
	// Default: "0 0 * * *" (midnight).
	CronSchedule string

	// Timezone is the IANA timezone the schedule is evaluated in.
	// Articles are keyed by UTC date, so the default is "UTC".
	Timezone string

	// GenerateOnStartup runs one full content generation immediately on
	// boot, before the first scheduled tick. Default: true, so a freshly
	// deployed worker backfills the current day without waiting for
	// midnight.
	GenerateOnStartup bool

	// RunTimeout is how long a scheduled tick waits for its daily content
	// run before moving on. The run itself is detached and always settles;
	// the timeout only bounds the wait. Default: 30 minutes.
	RunTimeout time.Duration

	// HealthPort is the port for the health check HTTP server.
	// Range: 1024-65535. Default: 9091.
	HealthPort int
}

// DefaultConfig returns production-ready defaults: one run per day at
// midnight UTC with a 30 minute budget.
func DefaultConfig() Config {
	return Config{
		CronSchedule:      "0 0 * * *",
		Timezone:          "UTC",
		GenerateOnStartup: true,
		RunTimeout:        30 * time.Minute,
		HealthPort:        9091,
	}
}

// Validate checks the configuration and aggregates every violation.
func (c *Config) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.RunTimeout); err != nil {
		errs = append(errs, fmt.Errorf("run timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads worker configuration from environment variables
// with validation and fallback to defaults on failure. It never returns an
// invalid configuration.
//
// Environment variables:
//   - CRON_SCHEDULE: cron expression (default: "0 0 * * *")
//   - WORKER_TIMEZONE: IANA timezone name (default: "UTC")
//   - GENERATE_ON_STARTUP: bool (default: true)
//   - RUN_TIMEOUT: duration string, 1m-4h (default: 30m)
//   - WORKER_HEALTH_PORT: integer 1024-65535 (default: 9091)
func LoadConfigFromEnv(logger *slog.Logger) *Config {
	cfg := DefaultConfig()

	result := config.LoadEnvWithFallback("CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = result.Value.(string)
	logFallback(logger, "CronSchedule", result)

	result = config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	logFallback(logger, "Timezone", result)

	result = config.LoadEnvBool("GENERATE_ON_STARTUP", cfg.GenerateOnStartup)
	cfg.GenerateOnStartup = result.Value.(bool)
	logFallback(logger, "GenerateOnStartup", result)

	result = config.LoadEnvDuration("RUN_TIMEOUT", cfg.RunTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 1*time.Minute, 4*time.Hour)
	})
	cfg.RunTimeout = result.Value.(time.Duration)
	logFallback(logger, "RunTimeout", result)

	result = config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = result.Value.(int)
	logFallback(logger, "HealthPort", result)

	return &cfg
}

func logFallback(logger *slog.Logger, field string, result config.LoadResult) {
	if !result.FallbackApplied {
		return
	}
	for _, warning := range result.Warnings {
		logger.Warn("Configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", warning))
	}
}
