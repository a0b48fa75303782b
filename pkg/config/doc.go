// Package config provides configuration management for strata.
//
// # Key Features
//
// - Config: one structure with a section per concern
// - Defaults for every key, so an empty file is a valid configuration
// - Environment overrides with the STRATA_ prefix (STRATA_SORT_PARALLELISM)
// - Environment variable substitution with ${VAR_NAME} syntax inside files
// - Validation on load
//
// # Usage
//
// ## Loading
//
//	cfg, err := config.Load("strata.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := logger.Init(cfg.Log.LoggerConfig()); err != nil {
//		log.Fatal(err)
//	}
//
// ## Environment Variable Substitution
//
//	# strata.yaml
//	log:
//	  level: ${STRATA_LOG_LEVEL}
//	sort:
//	  parallelism: 8
//	  nulls_last: true
//
// # Configuration Structure
//
//	type Config struct {
//		Log     LogConfig                   `yaml:"log"`
//		Sort    SortConfig                  `yaml:"sort"`
//		Metrics MetricsConfig               `yaml:"metrics"`
//		Tracing observability.TracingConfig `yaml:"tracing"`
//	}
//
// - Log: level, encoding (json or console), development mode
// - Sort: worker count, sequential cut-off, null placement, direction
// - Metrics: Prometheus listener
// - Tracing: span export for sort, distinct and join passes
//
// Save writes a Config back as YAML; `strata config init` uses it to emit
// the defaults.
package config
