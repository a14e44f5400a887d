package model

import "time"

// Run records one pipeline invocation for the history log.
type Run struct {
	StartedAt  time.Time
	FinishedAt time.Time
	ID         string
	TargetDir  string
	Model      string
	Results    []MoveResult
	TotalFiles int
	DryRun     bool
}
