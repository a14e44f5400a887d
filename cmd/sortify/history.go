package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tomastro/sortify/internal/cli"
	"github.com/tomastro/sortify/internal/storage"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show previous runs",
		Long: `Show the runs recorded in the history database.

Examples:
  sortify history            # list recent runs
  sortify history --last     # show the latest run's per-file decisions`,
		RunE: runHistory,
	}

	cmd.Flags().IntP("limit", "n", 10, "number of runs to list")
	cmd.Flags().Bool("last", false, "show the latest run in detail")

	_ = viper.BindPFlag("history.limit", cmd.Flags().Lookup("limit"))
	_ = viper.BindPFlag("history.last", cmd.Flags().Lookup("last"))

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := storage.NewSQLiteStorage(historyDBPath())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate history database: %w", err)
	}

	if viper.GetBool("history.last") {
		run, err := store.GetLatestRun(ctx)
		if err != nil {
			return err
		}
		if run == nil {
			fmt.Println(cli.SubtleStyle.Render("No runs recorded yet."))
			return nil
		}

		fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Run %s", run.ID)))
		fmt.Printf("  %s with %s at %s", run.TargetDir, run.Model, run.StartedAt.Format("2006-01-02 15:04:05"))
		if run.DryRun {
			fmt.Print(cli.SubtleStyle.Render("  (dry run)"))
		}
		fmt.Println()
		cli.RenderResults(os.Stdout, run.Results, run.DryRun)
		return nil
	}

	runs, err := store.ListRuns(ctx, viper.GetInt("history.limit"))
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No runs recorded yet."))
		return nil
	}

	fmt.Println(cli.TitleStyle.Render("Recent runs"))
	for _, run := range runs {
		mode := "live"
		if run.DryRun {
			mode = "dry-run"
		}
		fmt.Printf("  %s  %-7s  %3d file(s)  %s  %s\n",
			run.StartedAt.Format("2006-01-02 15:04"), mode, run.TotalFiles, run.Model, run.TargetDir)
	}

	return nil
}
