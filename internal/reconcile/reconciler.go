// Package reconcile repairs and parses raw completion text and guarantees
// that every file in a batch receives exactly one classification.
package reconcile

import (
	"log/slog"

	"github.com/tomastro/sortify/internal/model"
)

// Reconcile resolves raw completion text (or a failed batch) into a
// ClassificationResult that covers every entry of the batch exactly once.
// failed marks a batch whose inference call never produced usable text.
//
// Parsed filenames are matched against batch entries by exact byte equality
// only; foreign-script or ambiguous names are never guessed at. Entries
// absent from the parsed output fall back to Other, and parsed filenames
// that match no entry are discarded.
func Reconcile(batch model.Batch, raw string, failed bool) model.ClassificationResult {
	result := model.ClassificationResult{
		BatchID: batch.ID,
		Outcome: model.OutcomeFailed,
		Records: make([]model.ClassificationRecord, 0, len(batch.Entries)),
	}

	var mapping map[string]string
	if !failed {
		mapping, result.Outcome = parseMapping(raw)
		if result.Outcome == model.OutcomeFailed {
			slog.Warn("Unrepairable completion, falling back to Other for whole batch",
				"batch_id", batch.ID,
				"files", len(batch.Entries))
		}
	}

	for _, entry := range batch.Entries {
		record := model.ClassificationRecord{
			Filename: entry.Name,
			Category: model.CategoryOther,
			Fallback: true,
		}
		if label, ok := mapping[entry.Name]; ok {
			record.Category = model.ParseCategory(label)
			record.Fallback = false
		}
		result.Records = append(result.Records, record)
	}

	return result
}
