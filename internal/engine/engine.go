// Package engine coordinates the classification pipeline: scanning,
// batch planning, parallel inference, reconciliation, and merging the
// per-batch results into the run's move plan.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/tomastro/sortify/internal/config"
	"github.com/tomastro/sortify/internal/model"
	"github.com/tomastro/sortify/internal/planner"
	"github.com/tomastro/sortify/internal/prompt"
	"github.com/tomastro/sortify/internal/reconcile"
	"github.com/tomastro/sortify/internal/scanner"
	"github.com/tomastro/sortify/internal/service"
)

// Summary contains statistics about one pipeline run.
type Summary struct {
	ProcessingTime  time.Duration
	TotalFiles      int
	TotalBatches    int
	StrictBatches   int
	RepairedBatches int
	FailedBatches   int
	CanceledBatches int
	FallbackFiles   int
}

// Engine drives the pipeline for one run.
type Engine struct {
	client service.InferenceClient
	cfg    config.Config
}

// New creates a pipeline engine.
func New(client service.InferenceClient, cfg config.Config) *Engine {
	return &Engine{
		client: client,
		cfg:    cfg,
	}
}

// batchOutcome pairs a batch with its reconciled result as it comes off a
// worker. Canceled batches carry no result and are excluded from the plan.
type batchOutcome struct {
	result   model.ClassificationResult
	index    int
	entries  []model.FileEntry
	canceled bool
}

// BuildPlan runs scan -> plan -> classify -> reconcile and merges everything
// into a single MovePlan. Every scanned file appears in the plan exactly
// once unless the run was canceled before its batch was dispatched; batches
// that fail inference or parsing degrade to Other instead of being dropped.
func (e *Engine) BuildPlan(ctx context.Context) (*model.MovePlan, *Summary, error) {
	startTime := time.Now()

	files, err := scanner.Scan(e.cfg.TargetDir)
	if err != nil {
		return nil, nil, fmt.Errorf("scan failed: %w", err)
	}

	plan := &model.MovePlan{TargetDir: e.cfg.TargetDir}
	summary := &Summary{TotalFiles: len(files)}

	if len(files) == 0 {
		slog.Info("No files to sort", "target_dir", e.cfg.TargetDir)
		summary.ProcessingTime = time.Since(startTime)
		return plan, summary, nil
	}

	batches := planner.Plan(files, e.cfg.BatchSize)
	summary.TotalBatches = len(batches)

	slog.Info("Starting classification",
		"target_dir", e.cfg.TargetDir,
		"model", e.cfg.Model,
		"files", len(files),
		"batches", len(batches),
		"workers", e.cfg.Workers)

	outcomes := e.classifyParallel(ctx, batches)

	// Merge in batch order so the plan follows scan order.
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].index < outcomes[j].index })

	for _, outcome := range outcomes {
		if outcome.canceled {
			summary.CanceledBatches++
			continue
		}

		switch outcome.result.Outcome {
		case model.OutcomeStrict:
			summary.StrictBatches++
		case model.OutcomeRepaired:
			summary.RepairedBatches++
		case model.OutcomeFailed:
			summary.FailedBatches++
		}

		for i, record := range outcome.result.Records {
			if record.Fallback {
				summary.FallbackFiles++
			}
			plan.Moves = append(plan.Moves, model.Move{
				Entry:    outcome.entries[i],
				Category: record.Category,
				Fallback: record.Fallback,
			})
		}
	}

	summary.ProcessingTime = time.Since(startTime)

	slog.Info("Classification complete",
		"planned_moves", len(plan.Moves),
		"fallback_files", summary.FallbackFiles,
		"failed_batches", summary.FailedBatches,
		"canceled_batches", summary.CanceledBatches,
		"elapsed", summary.ProcessingTime)

	return plan, summary, nil
}

// classifyParallel dispatches batches to a bounded worker pool and collects
// every outcome. Workers share nothing but the channels; cancellation stops
// dispatch of new batches while in-flight ones finish.
func (e *Engine) classifyParallel(ctx context.Context, batches []model.Batch) []batchOutcome {
	workChan := make(chan model.Batch, len(batches))
	for _, batch := range batches {
		workChan <- batch
	}
	close(workChan)

	resultsChan := make(chan batchOutcome, len(batches))

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for batch := range workChan {
				select {
				case <-ctx.Done():
					resultsChan <- batchOutcome{index: batch.Index, entries: batch.Entries, canceled: true}
					continue
				default:
				}
				resultsChan <- batchOutcome{
					index:   batch.Index,
					entries: batch.Entries,
					result:  e.classifyBatch(ctx, batch),
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	outcomes := make([]batchOutcome, 0, len(batches))
	for outcome := range resultsChan {
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

// classifyBatch runs one batch through prompt rendering, inference, and
// reconciliation. Inference failure degrades the batch to fallback
// classification; it never aborts the run.
func (e *Engine) classifyBatch(ctx context.Context, batch model.Batch) model.ClassificationResult {
	req := prompt.Build(batch, e.cfg.Model, e.cfg.APIURL)

	batch.Status = model.BatchSent
	raw, err := e.client.Generate(ctx, req)
	if err != nil {
		batch.Status = model.BatchFailed
		slog.Warn("Batch inference failed, falling back to Other",
			"batch_id", batch.ID,
			"files", len(batch.Entries),
			"error", err)
		return reconcile.Reconcile(batch, "", true)
	}

	batch.Status = model.BatchSucceeded
	return reconcile.Reconcile(batch, raw, false)
}
