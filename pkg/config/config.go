package config

import (
	"runtime"

	"github.com/ajitpratap0/strata/pkg/logger"
	"github.com/ajitpratap0/strata/pkg/observability"
	"github.com/ajitpratap0/strata/pkg/strataerrors"
)

// Config is the root configuration.
type Config struct {
	// Log configures the global zap logger
	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Sort configures arg-sort and the passes built on it
	Sort SortConfig `mapstructure:"sort" yaml:"sort"`

	// Metrics configures Prometheus exposition
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// Tracing configures span export for passes
	Tracing observability.TracingConfig `mapstructure:"tracing" yaml:"tracing"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Encoding    string `mapstructure:"encoding" yaml:"encoding"`
	Development bool   `mapstructure:"development" yaml:"development"`
}

// SortConfig contains settings for comparator-driven passes.
type SortConfig struct {
	// Parallelism is the number of sort workers; 0 means runtime.NumCPU()
	Parallelism int `mapstructure:"parallelism" yaml:"parallelism"`
	// MinParallelRows is the row count below which sorts stay sequential
	MinParallelRows int `mapstructure:"min_parallel_rows" yaml:"min_parallel_rows"`
	// NullsLast moves null rows after present rows
	NullsLast bool `mapstructure:"nulls_last" yaml:"nulls_last"`
	// Descending reverses the order of present rows
	Descending bool `mapstructure:"descending" yaml:"descending"`
}

// MetricsConfig contains metrics settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Address string `mapstructure:"address" yaml:"address"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:    "info",
			Encoding: "json",
		},
		Sort: SortConfig{
			Parallelism:     0,
			MinParallelRows: 1 << 16,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Address: ":9464",
		},
		Tracing: observability.DefaultTracingConfig(),
	}
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	switch c.Log.Encoding {
	case "json", "console":
	default:
		return strataerrors.Newf(strataerrors.ErrorTypeConfig, "log.encoding must be json or console, got %q", c.Log.Encoding)
	}
	if c.Sort.Parallelism < 0 {
		return strataerrors.New(strataerrors.ErrorTypeConfig, "sort.parallelism cannot be negative").
			WithDetail("value", c.Sort.Parallelism)
	}
	if c.Sort.MinParallelRows < 0 {
		return strataerrors.New(strataerrors.ErrorTypeConfig, "sort.min_parallel_rows cannot be negative").
			WithDetail("value", c.Sort.MinParallelRows)
	}
	if c.Metrics.Enabled && c.Metrics.Address == "" {
		return strataerrors.New(strataerrors.ErrorTypeConfig, "metrics.address is required when metrics are enabled")
	}
	return c.Tracing.Validate()
}

// GetParallelism returns the number of sort workers, ensuring it's at least 1
func (s *SortConfig) GetParallelism() int {
	if s.Parallelism <= 0 {
		return runtime.NumCPU()
	}
	return s.Parallelism
}

// LoggerConfig converts the log section for logger.Init.
func (l LogConfig) LoggerConfig() logger.Config {
	return logger.Config{
		Level:       l.Level,
		Encoding:    l.Encoding,
		Development: l.Development,
	}
}
