package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	"daily-wisdom/internal/domain/entity"
	pgRepo "daily-wisdom/internal/infra/adapter/persistence/postgres"
	"daily-wisdom/internal/infra/db"
	"daily-wisdom/internal/infra/generator"
	"daily-wisdom/internal/infra/translator"
	workerPkg "daily-wisdom/internal/infra/worker"
	"daily-wisdom/internal/observability/logging"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workerConfig := workerPkg.LoadConfigFromEnv(logger)
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Bool("generate_on_startup", workerConfig.GenerateOnStartup),
		slog.Duration("run_timeout", workerConfig.RunTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	startMetricsServer(ctx, logger)

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	coordinator := setupCoordinator(logger, database)

	if workerConfig.GenerateOnStartup {
		logger.Info("startup generation enabled, running now")
		runDailyJob(logger, coordinator, workerConfig)
	}

	startCronWorker(logger, coordinator, workerConfig, healthServer)
}

// initDatabase opens the database connection and waits for migrations to complete.
// The API service owns schema migrations, so the worker only probes for the
// expected tables instead of running them itself.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	waitForMigrations(logger, database)
	return database
}

func waitForMigrations(logger *slog.Logger, db *sql.DB) {
	const probe = "SELECT 1 FROM days LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := db.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

// setupCoordinator wires the daily content coordinator with its generation
// and translation dependencies.
func setupCoordinator(logger *slog.Logger, database *sql.DB) *daily.Coordinator {
	artRepo := pgRepo.NewArticleRepo(database)

	genSvc := genUC.NewService(artRepo, createGenerator(logger))
	transSvc := transUC.NewService(artRepo, createTranslators(logger)...)

	return daily.NewCoordinator(artRepo, genSvc, transSvc)
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

// startCronWorker starts the cron scheduler and runs the daily job on schedule.
func startCronWorker(logger *slog.Logger, coordinator *daily.Coordinator, cfg *workerPkg.Config, healthServer *workerPkg.HealthServer) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runDailyJob(logger, coordinator, cfg)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker marked as ready")

	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", cfg.Timezone))
	select {}
}

// runDailyJob executes a single daily content run with timeout and error handling.
func runDailyJob(logger *slog.Logger, coordinator *daily.Coordinator, cfg *workerPkg.Config) {
	date := entity.Today()
	startTime := time.Now()
	logger.Info("daily run started", slog.String("date", date))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RunTimeout)
	defer cancel()

	result, err := coordinator.GenerateContentForDate(ctx, date, daily.Options{})
	if err != nil {
		logger.Error("daily run failed",
			slog.String("date", date),
			slog.Any("error", err),
			slog.Duration("duration", time.Since(startTime)))
		return
	}

	for lang, langErr := range result.Failed {
		logger.Warn("translation failed",
			slog.String("date", date),
			slog.String("language", string(lang)),
			slog.Any("error", langErr))
	}

	logger.Info("daily run completed",
		slog.String("date", date),
		slog.Bool("generated", result.Generated),
		slog.Int("translated", len(result.Translated)),
		slog.Int("failed", len(result.Failed)),
		slog.Duration("duration", time.Since(startTime)))
}
