package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/tomastro/sortify/internal/engine"
	"github.com/tomastro/sortify/internal/model"
)

// RenderResults writes the per-file outcome of a run. In dry-run mode every
// line is a planned source -> destination pair; in execution mode conflicts
// and failures are called out explicitly.
func RenderResults(w io.Writer, results []model.MoveResult, dryRun bool) {
	if len(results) == 0 {
		fmt.Fprintln(w, SubtleStyle.Render("Nothing to do."))
		return
	}

	if dryRun {
		fmt.Fprintln(w, TitleStyle.Render("Planned moves (dry run)"))
	} else {
		fmt.Fprintln(w, TitleStyle.Render("Moves"))
	}

	for _, r := range results {
		line := fmt.Sprintf("%s -> %s", r.Move.Entry.Name, CategoryStyle.Render(string(r.Move.Category)))
		if r.Move.Fallback {
			line += SubtleStyle.Render(" (fallback)")
		}

		switch r.Status {
		case model.MovePlanned:
			fmt.Fprintf(w, "  %s\n", line)
		case model.MoveApplied:
			fmt.Fprintf(w, "  %s %s\n", SuccessStyle.Render("✓"), line)
		case model.MoveConflict:
			fmt.Fprintf(w, "  %s %s %s\n", WarningStyle.Render("!"), line, WarningStyle.Render("conflict: destination exists, skipped"))
		case model.MoveFailed:
			fmt.Fprintf(w, "  %s %s %s\n", ErrorStyle.Render("✗"), line, ErrorStyle.Render(r.Error))
		}
	}
}

// RenderSummary writes the end-of-run statistics.
func RenderSummary(w io.Writer, summary *engine.Summary, results []model.MoveResult, dryRun bool) {
	var applied, conflicts, failed int
	for _, r := range results {
		switch r.Status {
		case model.MoveApplied:
			applied++
		case model.MoveConflict:
			conflicts++
		case model.MoveFailed:
			failed++
		case model.MovePlanned:
		}
	}

	fmt.Fprintln(w)
	if dryRun {
		fmt.Fprintln(w, SubtleStyle.Render(fmt.Sprintf(
			"%d files in %d batches classified in %s; %d fallback(s). No files were moved.",
			summary.TotalFiles, summary.TotalBatches, summary.ProcessingTime.Round(10*time.Millisecond), summary.FallbackFiles)))
		return
	}

	fmt.Fprintln(w, SuccessStyle.Render(fmt.Sprintf("Moved %d of %d file(s).", applied, summary.TotalFiles)))
	if conflicts > 0 {
		fmt.Fprintln(w, WarningStyle.Render(fmt.Sprintf("%d conflict(s): destination already existed, left in place.", conflicts)))
	}
	if failed > 0 {
		fmt.Fprintln(w, ErrorStyle.Render(fmt.Sprintf("%d move(s) failed; see log for details.", failed)))
	}
	if summary.FailedBatches > 0 || summary.FallbackFiles > 0 {
		fmt.Fprintln(w, SubtleStyle.Render(fmt.Sprintf(
			"%d batch(es) degraded, %d file(s) classified as Other by fallback.",
			summary.FailedBatches, summary.FallbackFiles)))
	}
	if summary.CanceledBatches > 0 {
		fmt.Fprintln(w, WarningStyle.Render(fmt.Sprintf("%d batch(es) canceled before dispatch.", summary.CanceledBatches)))
	}
}
