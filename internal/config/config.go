// Package config loads server configuration from the environment. A .env
// file in the working directory is read first when present.
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/rpg-story/internal/errors"
)

// Store backends
const (
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config holds everything the server needs to start
type Config struct {
	GRPCPort int `env:"RPG_STORY_GRPC_PORT" envDefault:"50051"`
	HTTPPort int `env:"RPG_STORY_HTTP_PORT" envDefault:"8080"`

	RedisAddr     string `env:"RPG_STORY_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"RPG_STORY_REDIS_PASSWORD"`
	RedisDB       int    `env:"RPG_STORY_REDIS_DB" envDefault:"0"`
	RedisTLS      bool   `env:"RPG_STORY_REDIS_TLS"`

	// Store selects where stories live; preview sessions always use redis
	Store      string `env:"RPG_STORY_STORE" envDefault:"redis"`
	SQLitePath string `env:"RPG_STORY_SQLITE_PATH" envDefault:"stories.db"`

	PreviewTTL      time.Duration `env:"RPG_STORY_PREVIEW_TTL" envDefault:"2h"`
	ShutdownTimeout time.Duration `env:"RPG_STORY_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	LogLevel  string `env:"RPG_STORY_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"RPG_STORY_LOG_FORMAT" envDefault:"text"`
}

// Load reads an optional env file and parses the environment. An empty
// envFile means ".env"; a missing file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "failed to load %s", envFile)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and enums
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("grpcPort", c.GRPCPort, 1, 65535, vb)
	errors.ValidateRange("httpPort", c.HTTPPort, 0, 65535, vb)
	errors.ValidateEnum("store", c.Store, []string{StoreRedis, StoreSQLite}, vb)
	errors.ValidateEnum("logLevel", strings.ToLower(c.LogLevel), []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("logFormat", strings.ToLower(c.LogFormat), []string{"text", "json"}, vb)
	if c.Store == StoreSQLite && c.SQLitePath == "" {
		vb.RequiredField("sqlitePath")
	}
	if c.PreviewTTL <= 0 {
		vb.InvalidField("previewTTL", "must be positive")
	}

	return vb.Build()
}

// SlogLevel converts LogLevel for slog
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the process logger from LogLevel and LogFormat
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if strings.ToLower(c.LogFormat) == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
