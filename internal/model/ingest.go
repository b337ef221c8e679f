package model

import (
	"time"

	"github.com/google/uuid"
)

type IngestOutcome string

const (
	IngestCommitted IngestOutcome = "COMMITTED"
	IngestSkipped   IngestOutcome = "SKIPPED"
	IngestFailed    IngestOutcome = "FAILED"
)

// IngestSummary is the result reported back to the upload collaborator.
type IngestSummary struct {
	RunID                 uuid.UUID     `json:"run_id"`
	FileName              string        `json:"file_name"`
	FileHash              string        `json:"file_hash"`
	Outcome               IngestOutcome `json:"outcome"`
	RowsConsidered        int           `json:"rows_considered"`
	RowsWritten           int           `json:"rows_written"`
	RowsSkippedStructural int           `json:"rows_skipped_structural"`
	RowsSkippedSubtotal   int           `json:"rows_skipped_subtotal"`
	OrdersWritten         int           `json:"orders_written"`
}

// IngestFile is the audit record of one load attempt. It is written outside
// the load transaction so failed attempts stay visible after rollback.
type IngestFile struct {
	ID                    uuid.UUID
	FileName              string
	FileHash              string
	Outcome               IngestOutcome
	RowsConsidered        int
	RowsWritten           int
	RowsSkippedStructural int
	RowsSkippedSubtotal   int
	OrdersWritten         int
	Error                 *string
	StartedAt             time.Time
	FinishedAt            time.Time
}
