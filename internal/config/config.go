// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/tomastro/sortify/internal/common"
	"github.com/tomastro/sortify/internal/service"
)

// Defaults for a run against a local Ollama endpoint.
const (
	DefaultModel     = "gpt-oss:20b-cloud"
	DefaultAPIURL    = "http://localhost:11434/api/generate"
	DefaultBatchSize = 15
	DefaultWorkers   = 2
	DefaultTimeout   = 120 * time.Second
	DefaultRateLimit = 60 // requests per minute
)

// Config carries every setting for one run. It is built once in the command
// layer and passed by value; components never read ambient state.
type Config struct {
	TargetDir string
	Model     string
	APIURL    string
	Retry     service.RetryOptions
	Timeout   time.Duration
	BatchSize int
	Workers   int
	RateLimit int
	DryRun    bool
}

// Default returns a Config populated with the standard defaults, targeting
// the current directory.
func Default() Config {
	return Config{
		TargetDir: ".",
		Model:     DefaultModel,
		APIURL:    DefaultAPIURL,
		BatchSize: DefaultBatchSize,
		Workers:   DefaultWorkers,
		Timeout:   DefaultTimeout,
		RateLimit: DefaultRateLimit,
		Retry: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: time.Second,
			MaxDelay:     15 * time.Second,
			Multiplier:   2.0,
		},
	}
}

// Validate checks the configuration before any classification starts.
// Failures here are fatal for the run.
func (c Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("%w: model must not be empty", common.ErrInvalidConfig)
	}
	if c.APIURL == "" {
		return fmt.Errorf("%w: api-url must not be empty", common.ErrInvalidConfig)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch-size must be positive, got %d", common.ErrInvalidConfig, c.BatchSize)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", common.ErrInvalidConfig, c.Workers)
	}

	info, err := os.Stat(c.TargetDir)
	if err != nil {
		return fmt.Errorf("%w: target directory %q: %v", common.ErrInvalidConfig, c.TargetDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: target %q is not a directory", common.ErrInvalidConfig, c.TargetDir)
	}

	return nil
}
