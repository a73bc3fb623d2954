// Package retry provides retry logic with deterministic backoff.
// It helps handle transient failures gracefully by automatically retrying failed operations.
// The delay schedule carries no jitter so that behavior is reproducible in tests.
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Schedule selects how the delay grows between attempts.
type Schedule int

const (
	// Exponential doubles the delay each attempt: BaseDelay * 2^(attempt-1).
	Exponential Schedule = iota

	// Linear grows the delay with the attempt number: BaseDelay * attempt.
	Linear
)

// Config holds the configuration for retry logic.
type Config struct {
	// MaxAttempts is the total number of attempts, including the first (>= 1).
	MaxAttempts int

	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration

	// Schedule is the backoff growth curve. Defaults to Exponential.
	Schedule Schedule

	// OnRetry is an observability hook invoked after each failed attempt
	// except the last, before the backoff delay. It has no effect on
	// control flow. May be nil.
	OnRetry func(attempt int, err error)
}

// DefaultConfig returns a default retry configuration.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 5,
		BaseDelay:   1 * time.Second,
		Schedule:    Exponential,
	}
}

// ProviderCallConfig returns configuration for content generation API calls.
// Aggressive retry because a failed daily generation is user-visible.
func ProviderCallConfig() Config {
	return Config{
		MaxAttempts: 5,
		BaseDelay:   1 * time.Second,
		Schedule:    Exponential,
	}
}

// TranslationSegmentConfig returns configuration for individual text segment
// translation calls. A linear schedule keeps the worst case short since each
// article translates two segments per language.
func TranslationSegmentConfig() Config {
	return Config{
		MaxAttempts: 3,
		BaseDelay:   1 * time.Second,
		Schedule:    Linear,
	}
}

// CoordinatorConfig returns configuration for whole-day content coordination.
func CoordinatorConfig() Config {
	return Config{
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
		Schedule:    Exponential,
	}
}

// Do executes fn up to cfg.MaxAttempts times.
//
// On failure before the final attempt it invokes cfg.OnRetry, waits for the
// scheduled delay, and tries again. On failure at the final attempt the last
// error is returned unchanged, without wrapping, so callers can branch on
// provider error types with errors.Is/As.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			if attempt > 1 {
				slog.Info("operation succeeded after retry",
					slog.Int("attempt", attempt))
			}
			return nil
		}

		if attempt == maxAttempts {
			break
		}

		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, lastErr)
		}

		delay := delayFor(cfg, attempt)
		slog.Warn("operation failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", maxAttempts),
			slog.Duration("delay", delay),
			slog.Any("error", lastErr))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}
	}

	return lastErr
}

// delayFor computes the backoff delay after the given 1-indexed attempt.
func delayFor(cfg Config, attempt int) time.Duration {
	switch cfg.Schedule {
	case Linear:
		return cfg.BaseDelay * time.Duration(attempt)
	default:
		return cfg.BaseDelay << (attempt - 1)
	}
}
