// Package config loads billsplitter settings from defaults, an optional
// config file, a .env file and BILLSPLITTER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/mmynk/billsplitter/internal/calculator"
)

const envPrefix = "BILLSPLITTER"

// Keys understood by Load.
const (
	KeyPort            = "port"
	KeyLogLevel        = "log_level"
	KeyAuthSecret      = "auth_secret"
	KeyTokenTTL        = "token_ttl"
	KeyTolerance       = "tolerance"
	KeyMetricsPath     = "metrics_path"
	KeyShutdownTimeout = "shutdown_timeout"
)

type Config struct {
	// HTTP server
	Port            int
	ShutdownTimeout time.Duration
	MetricsPath     string

	// Logging: debug, info, warn, error
	LogLevel string

	// Auth is disabled when AuthSecret is empty.
	AuthSecret string
	TokenTTL   time.Duration

	// Settlement
	Tolerance decimal.Decimal
}

// DefaultTolerance returns the default settlement tolerance as a string.
func DefaultTolerance() string {
	return calculator.DefaultTolerance.String()
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyPort, 8080)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyAuthSecret, "")
	v.SetDefault(KeyTokenTTL, 24*time.Hour)
	v.SetDefault(KeyTolerance, DefaultTolerance())
	v.SetDefault(KeyMetricsPath, "/metrics")
	v.SetDefault(KeyShutdownTimeout, 30*time.Second)
}

// Load reads configuration into a Config. configFile may be empty. Values
// from a .env file in the working directory are exported before the
// environment is consulted; variables already set win.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	SetDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	tolerance, err := decimal.NewFromString(strings.TrimSpace(v.GetString(KeyTolerance)))
	if err != nil {
		return nil, fmt.Errorf("invalid tolerance %q: %w", v.GetString(KeyTolerance), err)
	}

	cfg := &Config{
		Port:            v.GetInt(KeyPort),
		ShutdownTimeout: v.GetDuration(KeyShutdownTimeout),
		MetricsPath:     v.GetString(KeyMetricsPath),
		LogLevel:        strings.ToLower(v.GetString(KeyLogLevel)),
		AuthSecret:      v.GetString(KeyAuthSecret),
		TokenTTL:        v.GetDuration(KeyTokenTTL),
		Tolerance:       tolerance,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var problems []string

	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Port))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level %q: must be one of debug, info, warn, error", c.LogLevel))
	}

	if c.Tolerance.IsNegative() {
		problems = append(problems, fmt.Sprintf("invalid tolerance %s: cannot be negative", c.Tolerance))
	}

	if c.TokenTTL <= 0 {
		problems = append(problems, fmt.Sprintf("invalid token ttl %s: must be positive", c.TokenTTL))
	}

	if !strings.HasPrefix(c.MetricsPath, "/") {
		problems = append(problems, fmt.Sprintf("invalid metrics path %q: must start with /", c.MetricsPath))
	}

	if c.ShutdownTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid shutdown timeout %s: must be positive", c.ShutdownTimeout))
	}

	if len(problems) > 0 {
		return errors.New("configuration validation failed: " + strings.Join(problems, "; "))
	}
	return nil
}

// AuthEnabled reports whether RPCs require a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.AuthSecret != ""
}
