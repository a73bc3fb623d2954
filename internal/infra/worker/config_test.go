package worker

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "0 0 * * *", cfg.CronSchedule)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.True(t, cfg.GenerateOnStartup)
	assert.Equal(t, 30*time.Minute, cfg.RunTimeout)
	assert.Equal(t, 9091, cfg.HealthPort)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "bad cron", mutate: func(cfg *Config) { cfg.CronSchedule = "nope" }, wantErr: true},
		{name: "bad timezone", mutate: func(cfg *Config) { cfg.Timezone = "Mars/Olympus" }, wantErr: true},
		{name: "zero timeout", mutate: func(cfg *Config) { cfg.RunTimeout = 0 }, wantErr: true},
		{name: "privileged port", mutate: func(cfg *Config) { cfg.HealthPort = 80 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CRON_SCHEDULE", "30 6 * * *")
	t.Setenv("WORKER_TIMEZONE", "Asia/Tokyo")
	t.Setenv("GENERATE_ON_STARTUP", "false")
	t.Setenv("RUN_TIMEOUT", "1h")
	t.Setenv("WORKER_HEALTH_PORT", "9200")

	cfg := LoadConfigFromEnv(discardLogger())

	assert.Equal(t, "30 6 * * *", cfg.CronSchedule)
	assert.Equal(t, "Asia/Tokyo", cfg.Timezone)
	assert.False(t, cfg.GenerateOnStartup)
	assert.Equal(t, time.Hour, cfg.RunTimeout)
	assert.Equal(t, 9200, cfg.HealthPort)
}

func TestLoadConfigFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("CRON_SCHEDULE", "whenever")
	t.Setenv("WORKER_TIMEZONE", "Nowhere/AtAll")
	t.Setenv("RUN_TIMEOUT", "10h")
	t.Setenv("WORKER_HEALTH_PORT", "22")

	cfg := LoadConfigFromEnv(discardLogger())

	assert.Equal(t, "0 0 * * *", cfg.CronSchedule)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 30*time.Minute, cfg.RunTimeout)
	assert.Equal(t, 9091, cfg.HealthPort)
	assert.NoError(t, cfg.Validate(), "fallback config must always be valid")
}
