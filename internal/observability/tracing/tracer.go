// Package tracing provides OpenTelemetry tracing integration for the application.
// It exposes a process-wide tracer, an HTTP server middleware, and a helper for
// installing an SDK tracer provider at startup.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the global tracer instance for the daily-wisdom application.
var tracer = otel.Tracer("daily-wisdom")

// GetTracer returns the global tracer for creating spans.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}

// InitProvider installs an SDK tracer provider as the global OpenTelemetry
// provider and returns a shutdown function to flush pending spans.
// Without an installed provider, spans created through GetTracer are no-ops.
func InitProvider() (func(context.Context) error, error) {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)

	shutdown := func(ctx context.Context) error {
		if err := tp.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown tracer provider: %w", err)
		}
		return nil
	}
	return shutdown, nil
}
