// Package config loads the service configuration from a YAML file, the
// environment and built-in defaults, in increasing order of precedence:
// defaults, then file, then environment.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gartstein/bizmetrics/internal/company/auth"
	"github.com/gartstein/bizmetrics/internal/company/db"
	"github.com/gartstein/bizmetrics/internal/company/query"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultPath is the configuration file read when no other is given.
var DefaultPath = filepath.Join("internal", "company", "config", "config.yaml")

// Config holds the settings of the company and authentication services.
type Config struct {
	GRPCPort int `mapstructure:"GRPC_PORT"`
	HTTPPort int `mapstructure:"HTTP_PORT"`
	AuthPort int `mapstructure:"AUTH_PORT"`

	DBDSN        string `mapstructure:"DB_DSN"`
	DBDebug      bool   `mapstructure:"DB_DEBUG"`
	SeedFixtures bool   `mapstructure:"SEED_FIXTURES"`
	FixturesFile string `mapstructure:"FIXTURES_FILE"`

	KafkaBrokers []string `mapstructure:"KAFKA_BROKERS"`
	Topic        string   `mapstructure:"TOPIC"`

	JWTSecret string         `mapstructure:"JWT_SECRET"`
	TokenTTL  time.Duration  `mapstructure:"TOKEN_TTL"`
	Users     []auth.Account `mapstructure:"USERS"`

	PageSize int    `mapstructure:"PAGE_SIZE"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("GRPC_PORT", 50051)
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("AUTH_PORT", 8081)

	v.SetDefault("DB_DSN", db.DefaultDSN)
	v.SetDefault("DB_DEBUG", false)
	v.SetDefault("SEED_FIXTURES", true)
	v.SetDefault("FIXTURES_FILE", "")

	v.SetDefault("KAFKA_BROKERS", []string{})
	v.SetDefault("TOPIC", "company-events")

	v.SetDefault("JWT_SECRET", "jwt_secret")
	v.SetDefault("TOKEN_TTL", auth.DefaultTTL)

	v.SetDefault("PAGE_SIZE", query.DefaultPageSize)
	v.SetDefault("LOG_LEVEL", "info")
}

// Load reads the configuration. An empty path skips the file; a path that
// cannot be read is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	err := v.Unmarshal(cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	for name, port := range map[string]int{"GRPC_PORT": c.GRPCPort, "HTTP_PORT": c.HTTPPort, "AUTH_PORT": c.AuthPort} {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("invalid %s: %d", name, port)
		}
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("invalid PAGE_SIZE: %d", c.PageSize)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	brokers := c.KafkaBrokers[:0]
	for _, b := range c.KafkaBrokers {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	c.KafkaBrokers = brokers
	return nil
}

// DB returns the record store settings.
func (c *Config) DB() *db.Config {
	return &db.Config{DSN: c.DBDSN, Debug: c.DBDebug}
}

// NewLogger builds a production zap logger at the configured level.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
