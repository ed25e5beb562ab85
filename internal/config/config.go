package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every setting of a probe run
type Config struct {
	Input        string        `mapstructure:"input"`
	Output       string        `mapstructure:"output"`
	Format       string        `mapstructure:"format"`
	Layout       string        `mapstructure:"layout"`
	Scheme       string        `mapstructure:"scheme"`
	Timeout      time.Duration `mapstructure:"timeout"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	MaxBodySize  int64         `mapstructure:"max_body_size"`
	MaxDocSize   int64         `mapstructure:"max_document_size"`
	Seed         int64         `mapstructure:"seed"`
	Verbose      bool          `mapstructure:"verbose"`
	Log          LogConfig     `mapstructure:"log"`
}

// LogConfig configures structured logging
type LogConfig struct {
	Level       string   `mapstructure:"level"`
	Format      string   `mapstructure:"format"`
	OutputPaths []string `mapstructure:"output_paths"`
}

// EnvPrefix prefixes environment overrides, e.g. OASPROBE_TIMEOUT
const EnvPrefix = "OASPROBE"

// SetDefaults registers the default value of every key on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("input", "swagger_urls.csv")
	v.SetDefault("output", "api_test_results.csv")
	v.SetDefault("format", "csv")
	v.SetDefault("layout", "full")
	v.SetDefault("scheme", "https")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("fetch_timeout", 30*time.Second)
	v.SetDefault("max_body_size", 1<<20)
	v.SetDefault("max_document_size", 10<<20)
	v.SetDefault("seed", 0)
	v.SetDefault("verbose", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// ReadFile loads config.toml from the working directory if there is one.
// A missing file is not an error; a malformed one is.
func ReadFile(v *viper.Viper) error {
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// BindEnv makes every key overridable through OASPROBE_* variables
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes and validates the settings held by v
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that have a closed set of values
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("input path must not be empty")
	}
	switch c.Format {
	case "csv", "json":
	default:
		return fmt.Errorf("invalid format '%s': must be 'json' or 'csv'", c.Format)
	}
	switch c.Layout {
	case "full", "simple":
	default:
		return fmt.Errorf("invalid layout '%s': must be 'full' or 'simple'", c.Layout)
	}
	switch c.Scheme {
	case "http", "https":
	default:
		return fmt.Errorf("invalid scheme '%s': must be 'http' or 'https'", c.Scheme)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %v", c.FetchTimeout)
	}
	if c.MaxBodySize <= 0 || c.MaxDocSize <= 0 {
		return fmt.Errorf("size limits must be positive, got body=%d document=%d", c.MaxBodySize, c.MaxDocSize)
	}
	return nil
}
