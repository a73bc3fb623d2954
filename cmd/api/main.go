package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	hhttp "daily-wisdom/internal/handler/http"
	harticle "daily-wisdom/internal/handler/http/article"
	hgenerate "daily-wisdom/internal/handler/http/generate"
	"daily-wisdom/internal/handler/http/requestid"
	pgRepo "daily-wisdom/internal/infra/adapter/persistence/postgres"
	"daily-wisdom/internal/infra/db"
	"daily-wisdom/internal/infra/generator"
	"daily-wisdom/internal/infra/translator"
	"daily-wisdom/internal/observability/logging"
	"daily-wisdom/internal/observability/tracing"
	"daily-wisdom/internal/repository"
	"daily-wisdom/internal/usecase/daily"
	genUC "daily-wisdom/internal/usecase/generation"
	transUC "daily-wisdom/internal/usecase/translation"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	shutdownTracing := initTracing(logger)
	defer shutdownTracing()

	handler := setupServer(logger, database, getVersion())

	runServer(logger, handler, getVersion())
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// initTracing installs the OpenTelemetry tracer provider and returns a
// shutdown function that flushes pending spans.
func initTracing(logger *slog.Logger) func() {
	shutdown, err := tracing.InitProvider()
	if err != nil {
		logger.Warn("tracing disabled", slog.Any("error", err))
		return func() {}
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer configures and returns the HTTP handler with all routes and middleware.
func setupServer(logger *slog.Logger, database *sql.DB, version string) http.Handler {
	artRepo := pgRepo.NewArticleRepo(database)

	genSvc := genUC.NewService(artRepo, createGenerator(logger))
	transSvc := transUC.NewService(artRepo, createTranslators(logger)...)
	coordinator := daily.NewCoordinator(artRepo, genSvc, transSvc)

	mux := setupRoutes(database, version, artRepo, coordinator, transSvc, logger)
	return applyMiddleware(mux)
}

// createGenerator selects the article generation provider based on the
// GENERATOR_TYPE environment variable (claude or noop).
func createGenerator(logger *slog.Logger) genUC.Provider {
	generatorType := os.Getenv("GENERATOR_TYPE")
	if generatorType == "" {
		generatorType = "claude"
	}

	switch generatorType {
	case "claude":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			logger.Error("ANTHROPIC_API_KEY is required when GENERATOR_TYPE=claude")
			os.Exit(1)
		}
		logger.Info("using Claude API for article generation")
		return generator.NewClaude(apiKey)
	case "noop":
		logger.Warn("using no-op article generator, content will be placeholder text")
		return generator.NewNoOp()
	default:
		logger.Error("invalid GENERATOR_TYPE",
			slog.String("type", generatorType),
			slog.String("expected", "claude or noop"))
		os.Exit(1)
		return nil
	}
}

// createTranslators builds the translation provider chain in priority order.
// DeepL is preferred when configured, with OpenAI as the fallback. When no
// provider credentials are present a passthrough translator keeps the
// translation endpoints functional for local development.
func createTranslators(logger *slog.Logger) []transUC.Provider {
	var providers []transUC.Provider

	if apiKey := os.Getenv("DEEPL_API_KEY"); apiKey != "" {
		providers = append(providers, translator.NewDeepL(apiKey))
		logger.Info("DeepL translation provider enabled")
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		providers = append(providers, translator.NewOpenAI(apiKey))
		logger.Info("OpenAI translation provider enabled")
	}
	if len(providers) == 0 {
		logger.Warn("no translation providers configured, using passthrough translator")
		providers = append(providers, translator.NewNoOp())
	}
	return providers
}

// setupRoutes registers all HTTP routes.
func setupRoutes(
	database *sql.DB,
	version string,
	artRepo repository.ArticleRepository,
	coordinator *daily.Coordinator,
	transSvc *transUC.Service,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()

	harticle.Register(mux, artRepo, coordinator, transSvc)
	hgenerate.Register(mux, coordinator, loadGenerateAPIKey(logger))

	mux.Handle("GET /health", hhttp.HealthHandler{DB: database, Version: version})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	return mux
}

// loadGenerateAPIKey reads the API key protecting the internal generation
// endpoint. An empty key leaves the endpoint disabled.
func loadGenerateAPIKey(logger *slog.Logger) string {
	apiKey := os.Getenv("GENERATE_API_KEY")
	if apiKey == "" {
		logger.Warn("GENERATE_API_KEY not set, internal generation endpoint disabled")
	}
	return apiKey
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: Request ID -> Tracing -> Metrics -> routes.
func applyMiddleware(handler http.Handler) http.Handler {
	chain := handler
	chain = hhttp.MetricsMiddleware(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := ":" + getPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}

// getPort returns the HTTP listen port from environment or default.
func getPort() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return port
}
