package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tomastro/sortify/internal/cli"
	"github.com/tomastro/sortify/internal/config"
	"github.com/tomastro/sortify/internal/engine"
	"github.com/tomastro/sortify/internal/executor"
	"github.com/tomastro/sortify/internal/llm"
	"github.com/tomastro/sortify/internal/model"
	"github.com/tomastro/sortify/internal/storage"
)

func sortCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Classify and move the files in a directory",
		Long: `Classify every file in the target directory by filename and move each one
into a category folder (Documents, Images, Music, Video, Code, Archives, Other).

Files the endpoint cannot classify are filed under Other; nothing is ever
skipped or overwritten.

Examples:
  sortify sort                        # sort the current directory
  sortify sort -t ~/Downloads         # sort another directory
  sortify sort --dry-run              # preview without moving anything
  sortify sort --model llama3.2:3b    # use a different local model`,
		RunE: runSort,
	}

	cmd.Flags().StringP("target-dir", "t", ".", "directory to sort")
	cmd.Flags().StringP("model", "m", config.DefaultModel, "model identifier sent to the inference endpoint")
	cmd.Flags().String("api-url", config.DefaultAPIURL, "inference endpoint URL")
	cmd.Flags().IntP("batch-size", "b", config.DefaultBatchSize, "files per inference request")
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers, "concurrent inference requests")
	cmd.Flags().Bool("dry-run", false, "preview the move plan without touching the filesystem")
	cmd.Flags().Duration("timeout", config.DefaultTimeout, "per-request timeout")

	_ = viper.BindPFlag("sort.target_dir", cmd.Flags().Lookup("target-dir"))
	_ = viper.BindPFlag("sort.model", cmd.Flags().Lookup("model"))
	_ = viper.BindPFlag("sort.api_url", cmd.Flags().Lookup("api-url"))
	_ = viper.BindPFlag("sort.batch_size", cmd.Flags().Lookup("batch-size"))
	_ = viper.BindPFlag("sort.workers", cmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("sort.dry_run", cmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("sort.timeout", cmd.Flags().Lookup("timeout"))

	return cmd
}

func runSort(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg := config.Default()
	cfg.TargetDir = config.ExpandPath(viper.GetString("sort.target_dir"))
	cfg.Model = viper.GetString("sort.model")
	cfg.APIURL = viper.GetString("sort.api_url")
	cfg.BatchSize = viper.GetInt("sort.batch_size")
	cfg.Workers = viper.GetInt("sort.workers")
	cfg.DryRun = viper.GetBool("sort.dry_run")
	cfg.Timeout = viper.GetDuration("sort.timeout")

	if err := cfg.Validate(); err != nil {
		return err
	}

	client := llm.NewOllamaClient(llm.Options{
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		Retry:     cfg.Retry,
	})
	defer client.Close()

	startedAt := time.Now()

	plan, summary, err := engine.New(client, cfg).BuildPlan(ctx)
	if err != nil {
		return err
	}

	// Filesystem mutation runs outside the classification context so an
	// interrupt during inference still leaves a consistent directory.
	results := executor.New(cfg.DryRun).Apply(context.Background(), plan)

	cli.RenderResults(os.Stdout, results, cfg.DryRun)
	cli.RenderSummary(os.Stdout, summary, results, cfg.DryRun)

	recordRun(&model.Run{
		ID:         uuid.New().String(),
		TargetDir:  cfg.TargetDir,
		Model:      cfg.Model,
		DryRun:     cfg.DryRun,
		TotalFiles: summary.TotalFiles,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
		Results:    results,
	})

	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("run interrupted: %d batch(es) were not classified", summary.CanceledBatches)
	}

	return nil
}

// recordRun appends the run to the history database. History is an audit
// log, not a pipeline dependency, so failures only warn.
func recordRun(run *model.Run) {
	store, err := storage.NewSQLiteStorage(historyDBPath())
	if err != nil {
		slog.Warn("Run history unavailable", "error", err)
		return
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Warn("Failed to close history database", "error", closeErr)
		}
	}()

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		slog.Warn("Failed to migrate history database", "error", err)
		return
	}
	if err := store.SaveRun(ctx, run); err != nil {
		slog.Warn("Failed to record run history", "error", err)
	}
}

func historyDBPath() string {
	if path := viper.GetString("history.path"); path != "" {
		return config.ExpandPath(path)
	}
	return config.ExpandPath("~/.local/share/sortify/sortify.db")
}
