package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nurpe/orimex-orders/internal/model"
)

// Store is the persistence surface one file load runs against. The
// gorm-backed IngestRepository is the production implementation; service
// tests substitute an in-memory fake. The handle is injected per load and
// never held as process state.
type Store interface {
	// HasFileHash reports whether any order is already tagged with the
	// fingerprint, i.e. the file content was ingested before.
	HasFileHash(ctx context.Context, hash string) (bool, error)
	GetOrCreateContractor(ctx context.Context, c model.Contractor) (int64, error)
	GetOrCreateProduct(ctx context.Context, p model.Product) (int64, error)
	InsertOrder(ctx context.Context, o model.Order) error
	RecordIngest(ctx context.Context, rec model.IngestFile) error
	// Transaction runs fn against a store bound to one database
	// transaction; any error rolls the whole load back.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type IngestRepository struct {
	db *gorm.DB
}

func NewIngestRepository(db *gorm.DB) *IngestRepository {
	return &IngestRepository{db: db}
}

func (r *IngestRepository) HasFileHash(ctx context.Context, hash string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM orders WHERE file_hash = ?
	`, hash).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertOrder is a pure append: no update or merge logic.
func (r *IngestRepository) InsertOrder(ctx context.Context, o model.Order) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO orders (contractor_id, product_id, order_date, quantity, amount, file_hash)
		VALUES (?, ?, ?, ?, ?, ?)
	`, o.ContractorID, o.ProductID, o.OrderDate, o.Quantity, o.Amount, o.FileHash).Error
}

func (r *IngestRepository) RecordIngest(ctx context.Context, rec model.IngestFile) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO ingest_files (
			id,
			file_name,
			file_hash,
			outcome,
			rows_considered,
			rows_written,
			rows_skipped_structural,
			rows_skipped_subtotal,
			orders_written,
			error,
			started_at,
			finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.FileName,
		rec.FileHash,
		rec.Outcome,
		rec.RowsConsidered,
		rec.RowsWritten,
		rec.RowsSkippedStructural,
		rec.RowsSkippedSubtotal,
		rec.OrdersWritten,
		rec.Error,
		rec.StartedAt,
		rec.FinishedAt,
	).Error
}

func (r *IngestRepository) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&IngestRepository{db: tx})
	})
}
