package common

import (
	"fmt"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Benchmark configuration struct
// --------------------------------------------------------------------------

// BenchConfig holds the parameters of a lock contention benchmark.
type BenchConfig struct {
	// Number of concurrent workers
	Workers int
	// Number of distinct lock keys the workers contend for
	Keys int
	// Lock operations per worker
	Iterations int

	// Budget of a single attempt. Zero or less means a blocking acquire.
	AttemptTimeout time.Duration
	// How long a worker keeps a lock once it got it
	HoldTime time.Duration
	// Whether nested acquisitions must be balanced by releases
	HoldCount bool

	// Whether to print the Prometheus metrics after the run
	PrintMetrics bool

	// Logging configuration
	LogLevel string
}

// Validate checks the configuration for values that cannot run
func (c *BenchConfig) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Keys < 1 {
		return fmt.Errorf("keys must be at least 1, got %d", c.Keys)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("iterations must be at least 1, got %d", c.Iterations)
	}
	if c.HoldTime < 0 {
		return fmt.Errorf("hold time must not be negative, got %v", c.HoldTime)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// String returns a formatted string representation of the configuration
func (c *BenchConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Workload")
	addField("Workers", fmt.Sprintf("%d", c.Workers))
	addField("Keys", fmt.Sprintf("%d", c.Keys))
	addField("Iterations", fmt.Sprintf("%d", c.Iterations))

	addSection("Locking")
	if c.AttemptTimeout > 0 {
		addField("Mode", "attempt")
		addField("Attempt Timeout", c.AttemptTimeout.String())
	} else {
		addField("Mode", "acquire")
	}
	addField("Hold Time", c.HoldTime.String())
	addField("Hold Count", fmt.Sprintf("%t", c.HoldCount))

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}
