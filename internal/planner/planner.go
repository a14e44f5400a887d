// Package planner partitions scanned files into classification batches.
package planner

import (
	"github.com/google/uuid"

	"github.com/tomastro/sortify/internal/model"
)

// Plan splits files into contiguous batches of at most batchSize entries,
// preserving scan order; the final batch may be smaller. Every batch gets a
// unique correlation ID used to match its response later.
func Plan(files []model.FileEntry, batchSize int) []model.Batch {
	if batchSize <= 0 {
		batchSize = 1
	}

	batches := make([]model.Batch, 0, (len(files)+batchSize-1)/batchSize)
	for start := 0; start < len(files); start += batchSize {
		end := start + batchSize
		if end > len(files) {
			end = len(files)
		}
		batches = append(batches, model.Batch{
			ID:      uuid.New().String(),
			Index:   len(batches),
			Status:  model.BatchPending,
			Entries: files[start:end],
		})
	}

	return batches
}
