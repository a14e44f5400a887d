// Package executor applies or previews a move plan against the filesystem.
package executor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/tomastro/sortify/internal/model"
)

// Executor turns a move plan into filesystem mutations, or a preview of them.
type Executor struct {
	progressOut io.Writer
	dryRun      bool
}

// New creates an executor. In dry-run mode Apply computes destinations but
// never touches the filesystem.
func New(dryRun bool) *Executor {
	return &Executor{
		dryRun:      dryRun,
		progressOut: os.Stderr,
	}
}

// SetProgressOutput redirects the progress bar, mainly for tests.
func (x *Executor) SetProgressOutput(w io.Writer) {
	x.progressOut = w
}

// Apply processes every move in the plan independently. Category directories
// are created on demand (create-if-absent). A pre-existing file at a
// destination is never overwritten: it is recorded as a conflict and
// skipped. Any other per-file failure is recorded and skipped as well; no
// move aborts the run. Cancellation stops before the next move, leaving
// already-applied moves in place.
func (x *Executor) Apply(ctx context.Context, plan *model.MovePlan) []model.MoveResult {
	results := make([]model.MoveResult, 0, len(plan.Moves))

	var bar *progressbar.ProgressBar
	if !x.dryRun && len(plan.Moves) > 0 {
		bar = progressbar.NewOptions(len(plan.Moves),
			progressbar.OptionSetWriter(x.progressOut),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Moving files..."),
		)
	}

	for _, move := range plan.Moves {
		if err := ctx.Err(); err != nil {
			break
		}

		result := x.applyMove(plan.TargetDir, move)
		results = append(results, result)

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(x.progressOut)
	}

	return results
}

// applyMove handles a single file.
func (x *Executor) applyMove(targetDir string, move model.Move) model.MoveResult {
	destDir := filepath.Join(targetDir, SanitizeDirName(string(move.Category)))
	dest := filepath.Join(destDir, move.Entry.Name)

	result := model.MoveResult{
		Move:        move,
		Destination: dest,
	}

	if x.dryRun {
		result.Status = model.MovePlanned
		return result
	}

	if err := os.MkdirAll(destDir, 0o750); err != nil {
		result.Status = model.MoveFailed
		result.Error = fmt.Sprintf("failed to create category directory: %v", err)
		slog.Error("Failed to create category directory", "dir", destDir, "error", err)
		return result
	}

	if _, err := os.Lstat(dest); err == nil {
		result.Status = model.MoveConflict
		result.Error = fmt.Sprintf("destination already exists: %s", dest)
		slog.Warn("Destination exists, skipping", "file", move.Entry.Name, "destination", dest)
		return result
	}

	if err := os.Rename(move.Entry.Path, dest); err != nil {
		result.Status = model.MoveFailed
		result.Error = fmt.Sprintf("move failed: %v", err)
		slog.Error("Failed to move file", "file", move.Entry.Name, "destination", dest, "error", err)
		return result
	}

	result.Status = model.MoveApplied
	return result
}
