package model

import "time"

// Order is one transactional fact extracted from a source file. Quantity is
// always strictly positive for a persisted order; Amount may be absent even
// when quantity is present. FileHash ties the row to the source file that
// produced it. Orders are append-only.
type Order struct {
	ID           int64
	ContractorID int64
	ProductID    int64
	OrderDate    time.Time
	Quantity     float64
	Amount       *float64
	FileHash     string
}
