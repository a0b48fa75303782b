package config

import (
	"bytes"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/strata/pkg/strataerrors"
)

// EnvPrefix prefixes environment overrides, e.g. STRATA_SORT_PARALLELISM.
const EnvPrefix = "STRATA"

// Load reads configuration from a YAML file (optional, "" skips it), applies
// STRATA_* environment overrides on top of the defaults and validates.
// ${VAR} references inside the file are substituted before parsing.
func Load(filePath string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if filePath != "" {
		data, err := os.ReadFile(filePath) //nolint:gosec // G304: path comes from the operator
		if err != nil {
			return nil, strataerrors.Wrap(err, strataerrors.ErrorTypeFile, "failed to read config file").
				WithDetail("path", filePath)
		}
		v.SetConfigType("yaml")
		if err := v.ReadConfig(bytes.NewReader([]byte(substituteEnvVars(string(data))))); err != nil {
			return nil, strataerrors.Wrap(err, strataerrors.ErrorTypeConfig, "failed to parse config file").
				WithDetail("path", filePath)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, strataerrors.Wrap(err, strataerrors.ErrorTypeConfig, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.encoding", d.Log.Encoding)
	v.SetDefault("log.development", d.Log.Development)
	v.SetDefault("sort.parallelism", d.Sort.Parallelism)
	v.SetDefault("sort.min_parallel_rows", d.Sort.MinParallelRows)
	v.SetDefault("sort.nulls_last", d.Sort.NullsLast)
	v.SetDefault("sort.descending", d.Sort.Descending)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.address", d.Metrics.Address)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
	v.SetDefault("tracing.service_version", d.Tracing.ServiceVersion)
	v.SetDefault("tracing.sampling_rate", d.Tracing.SamplingRate)
	v.SetDefault("tracing.exporter", d.Tracing.ExporterType)
}

// Save writes a configuration to a YAML file
func Save(filePath string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return strataerrors.Wrap(err, strataerrors.ErrorTypeConfig, "failed to marshal YAML")
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil { //nolint:gosec
		return strataerrors.Wrap(err, strataerrors.ErrorTypeFile, "failed to write config file").
			WithDetail("path", filePath)
	}

	return nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values
func substituteEnvVars(content string) string {
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		varName := content[start+2 : end]
		envValue := os.Getenv(varName)
		content = content[:start] + envValue + content[end+1:]
	}
	return content
}
