package model

// BatchStatus tracks a batch through the inference lifecycle.
type BatchStatus string

// Batch status constants.
const (
	BatchPending   BatchStatus = "PENDING"
	BatchSent      BatchStatus = "SENT"
	BatchSucceeded BatchStatus = "SUCCEEDED"
	BatchFailed    BatchStatus = "FAILED"
)

// Batch is a bounded group of files classified together in one inference
// request. Entries preserve scan order. ID correlates the batch with its
// request and response.
type Batch struct {
	ID      string
	Status  BatchStatus
	Entries []FileEntry
	Index   int
}

// ClassificationRequest is one rendered completion request for a batch.
// It is created by the prompt builder and never mutated afterwards.
type ClassificationRequest struct {
	BatchID string
	Prompt  string
	Model   string
	APIURL  string
}
