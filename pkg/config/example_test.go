package config_test

import (
	"fmt"
	"log"

	"github.com/ajitpratap0/strata/pkg/config"
)

// ExampleDefault demonstrates the configuration used without a file.
func ExampleDefault() {
	cfg := config.Default()

	fmt.Printf("Log Level: %s\n", cfg.Log.Level)
	fmt.Printf("Log Encoding: %s\n", cfg.Log.Encoding)
	fmt.Printf("Min Parallel Rows: %d\n", cfg.Sort.MinParallelRows)
	fmt.Printf("Tracing: %v\n", cfg.Tracing.Enabled)

	// Output:
	// Log Level: info
	// Log Encoding: json
	// Min Parallel Rows: 65536
	// Tracing: false
}

// ExampleConfig_Validate shows how to validate a configuration
// before using it.
func ExampleConfig_Validate() {
	cfg := config.Default()

	cfg.Sort.Parallelism = 16
	cfg.Sort.NullsLast = true

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	fmt.Println("Configuration is valid!")

	cfg.Log.Encoding = "xml"
	fmt.Println(cfg.Validate())

	// Output:
	// Configuration is valid!
	// config: log.encoding must be json or console, got "xml"
}

// ExampleSortConfig_GetParallelism shows that an explicit worker count wins
// over the CPU-based default.
func ExampleSortConfig_GetParallelism() {
	cfg := config.Default()
	cfg.Sort.Parallelism = 3

	fmt.Println(cfg.Sort.GetParallelism())

	// Output:
	// 3
}
