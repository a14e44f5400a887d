// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/tomastro/sortify/internal/model"
)

// InferenceClient sends one rendered classification request to the local
// completion endpoint and returns the raw generated text. Implementations
// own retry and backoff; a returned error means the batch is unrecoverable
// and must degrade to fallback classification.
type InferenceClient interface {
	Generate(ctx context.Context, req model.ClassificationRequest) (string, error)
}

// RunStore persists run history for later inspection.
type RunStore interface {
	SaveRun(ctx context.Context, run *model.Run) error
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)
	GetLatestRun(ctx context.Context) (*model.Run, error)
	Close() error
}

// RetryOptions configures retry behavior for operations that may fail
// transiently.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
