package config

import (
	_ "embed"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"novated-lease/service"
)

//go:embed default-config.yaml
var defaultConfigYAML []byte

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type RateLimitConfig struct {
	Capacity int           `yaml:"capacity"`
	Refill   time.Duration `yaml:"refill"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	RedisAddr string        `yaml:"redis_addr"`
	TTL       time.Duration `yaml:"ttl"`
}

type PostgresConfig struct {
	Enabled bool   `yaml:"enabled"`
	DSN     string `yaml:"dsn"`
}

type KafkaConfig struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	Kinds   []string `yaml:"kinds"`
}

type PersistenceConfig struct {
	Timeout  time.Duration  `yaml:"timeout"`
	Postgres PostgresConfig `yaml:"postgres"`
	Kafka    KafkaConfig    `yaml:"kafka"`
}

type Config struct {
	Server      ServerConfig             `yaml:"server"`
	RateLimit   RateLimitConfig          `yaml:"rate_limit"`
	Logging     LoggingConfig            `yaml:"logging"`
	Cache       CacheConfig              `yaml:"cache"`
	Persistence PersistenceConfig        `yaml:"persistence"`
	Analyzer    service.AnalyzerSettings `yaml:"analyzer"`
}

// Default returns the embedded configuration.
func Default() (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to parse embedded config")
	}
	return cfg, nil
}

// Load starts from the embedded defaults, overlays the YAML file at path when
// one is given, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(err, "failed to read config %s", path)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "failed to parse config %s", path)
		}
	}

	applyEnv(&cfg, os.Getenv)
	return cfg, nil
}

// applyEnv overrides connection settings from the environment. Setting a
// connection string also enables the backend it belongs to.
func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv("HTTP_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
		cfg.Cache.Enabled = true
	}
	if v := getenv("DATABASE_URL"); v != "" {
		cfg.Persistence.Postgres.DSN = v
		cfg.Persistence.Postgres.Enabled = true
	}
	if v := getenv("KAFKA_BROKERS"); v != "" {
		cfg.Persistence.Kafka.Brokers = splitList(v)
		cfg.Persistence.Kafka.Enabled = true
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
