package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30, cfg.RateLimit.Capacity)
	assert.Equal(t, time.Minute, cfg.RateLimit.Refill)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 2*time.Second, cfg.Persistence.Timeout)
	assert.Equal(t, []string{"lead"}, cfg.Persistence.Kafka.Kinds)
	assert.Equal(t, 1e-6, cfg.Analyzer.Tolerance)
	assert.Equal(t, 100, cfg.Analyzer.MaxIterations)
	assert.Equal(t, 7.5, cfg.Analyzer.MarketRatePct)
}

func TestLoad_FileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lease.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
analyzer:
  max_iterations: 40
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 40, cfg.Analyzer.MaxIterations)
	assert.Equal(t, 1e-6, cfg.Analyzer.Tolerance)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: ["), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	env := map[string]string{
		"HTTP_ADDR":     ":7000",
		"LOG_LEVEL":     "debug",
		"REDIS_ADDR":    "redis:6379",
		"DATABASE_URL":  "postgres://lease@db/lease",
		"KAFKA_BROKERS": "k1:9092, k2:9092,",
	}
	applyEnv(&cfg, func(k string) string { return env[k] })

	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "redis:6379", cfg.Cache.RedisAddr)
	assert.True(t, cfg.Persistence.Postgres.Enabled)
	assert.Equal(t, "postgres://lease@db/lease", cfg.Persistence.Postgres.DSN)
	assert.True(t, cfg.Persistence.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Persistence.Kafka.Brokers)
}

func TestApplyEnv_EmptyLeavesConfig(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	before := cfg

	applyEnv(&cfg, func(string) string { return "" })
	assert.Equal(t, before, cfg)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LoggingConfig{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = NewLogger(LoggingConfig{Level: "chatty"})
	assert.Error(t, err)
}
