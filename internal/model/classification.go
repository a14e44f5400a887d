package model

// ParseOutcome tags how a batch's raw completion text was resolved.
type ParseOutcome string

// Parse outcome constants.
const (
	// OutcomeStrict means the completion unmarshalled as-is.
	OutcomeStrict ParseOutcome = "STRICT"
	// OutcomeRepaired means the completion unmarshalled only after
	// non-structural artifacts were stripped.
	OutcomeRepaired ParseOutcome = "REPAIRED"
	// OutcomeFailed means no usable structure could be recovered; every
	// file in the batch falls back to Other.
	OutcomeFailed ParseOutcome = "FAILED"
)

// ClassificationRecord is one filename-to-category decision. Fallback is
// true when the category was assigned by default because the response
// omitted the file or the batch failed outright.
type ClassificationRecord struct {
	Filename string
	Category Category
	Fallback bool
}

// ClassificationResult holds the reconciled records for one batch. It always
// contains exactly one record per entry of the originating batch.
type ClassificationResult struct {
	BatchID string
	Outcome ParseOutcome
	Records []ClassificationRecord
}

// Move pairs a file with its destination category.
type Move struct {
	Entry    FileEntry
	Category Category
	Fallback bool
}

// MovePlan is the complete set of destination decisions for a run. It is
// assembled once from all batch results and read-only afterwards.
type MovePlan struct {
	TargetDir string
	Moves     []Move
}

// MoveStatus describes the outcome of applying (or previewing) one move.
type MoveStatus string

// Move status constants.
const (
	MovePlanned  MoveStatus = "PLANNED"
	MoveApplied  MoveStatus = "APPLIED"
	MoveConflict MoveStatus = "CONFLICT"
	MoveFailed   MoveStatus = "FAILED"
)

// MoveResult records what happened to one planned move.
type MoveResult struct {
	Move        Move
	Destination string
	Status      MoveStatus
	Error       string
}
