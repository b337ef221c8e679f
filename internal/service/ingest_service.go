package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/orimex-orders/internal/config"
	"github.com/nurpe/orimex-orders/internal/model"
	"github.com/nurpe/orimex-orders/internal/parse"
	"github.com/nurpe/orimex-orders/internal/repository"
)

// IngestService loads one exported order file into the normalized store:
// fingerprint precheck, header analysis, row classification and order
// writing, all inside a single transaction. A load either commits whole or
// leaves the store exactly as it was.
type IngestService struct {
	store      repository.Store
	classifier *parse.Classifier
	delimiter  rune
	log        zerolog.Logger

	// Loads are serialized: entity get-or-create is lookup-then-insert and
	// not safe against a concurrent writer.
	mu sync.Mutex
}

func NewIngestService(store repository.Store, cfg *config.Config, log zerolog.Logger) *IngestService {
	return &IngestService{
		store:      store,
		classifier: parse.NewClassifier(parse.DefaultFieldOffsets(), cfg.Ingest.SubtotalMarkers),
		delimiter:  cfg.DelimiterRune(),
		log:        log,
	}
}

// IngestFile ingests the staged file at path. The returned summary is
// populated even when err is non-nil; its outcome is then IngestFailed and
// the store holds no rows from this attempt.
func (s *IngestService) IngestFile(ctx context.Context, path string) (*model.IngestSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := time.Now().UTC()
	summary := &model.IngestSummary{
		RunID:    uuid.New(),
		FileName: filepath.Base(path),
	}
	log := s.log.With().Stringer("run_id", summary.RunID).Str("file", summary.FileName).Logger()

	data, err := os.ReadFile(path)
	if err != nil {
		summary.Outcome = model.IngestFailed
		return summary, fmt.Errorf("read file: %w", err)
	}

	digest := md5.Sum(data)
	summary.FileHash = hex.EncodeToString(digest[:])
	log = log.With().Str("file_hash", summary.FileHash).Logger()

	seen, err := s.store.HasFileHash(ctx, summary.FileHash)
	if err != nil {
		summary.Outcome = model.IngestFailed
		s.record(ctx, log, summary, started, err)
		return summary, fmt.Errorf("fingerprint precheck: %w", err)
	}
	if seen {
		// Robust to renaming: the content was ingested before, whatever
		// the file is called now.
		summary.Outcome = model.IngestSkipped
		log.Info().Msg("file already ingested, skipping")
		s.record(ctx, log, summary, started, nil)
		return summary, nil
	}

	rows, err := parse.ReadRows(summary.FileName, data, s.delimiter)
	if err != nil {
		summary.Outcome = model.IngestFailed
		s.record(ctx, log, summary, started, err)
		return summary, err
	}

	layout, err := parse.AnalyzeHeader(rows)
	if err != nil {
		summary.Outcome = model.IngestFailed
		s.record(ctx, log, summary, started, err)
		return summary, err
	}
	log.Info().
		Bool("super_header", layout.SuperHeader).
		Int("date_columns", len(layout.Dates)).
		Msg("header analyzed")

	txErr := s.store.Transaction(ctx, func(tx repository.Store) error {
		return s.loadRows(ctx, tx, log, rows[layout.DataStart:], layout.Dates, summary)
	})
	if txErr != nil {
		summary.Outcome = model.IngestFailed
		s.record(ctx, log, summary, started, txErr)
		return summary, fmt.Errorf("load rows: %w", txErr)
	}

	summary.Outcome = model.IngestCommitted
	log.Info().
		Int("rows_considered", summary.RowsConsidered).
		Int("rows_written", summary.RowsWritten).
		Int("rows_skipped_structural", summary.RowsSkippedStructural).
		Int("rows_skipped_subtotal", summary.RowsSkippedSubtotal).
		Int("orders_written", summary.OrdersWritten).
		Msg("file ingested")
	s.record(ctx, log, summary, started, nil)
	return summary, nil
}

// loadRows runs the classification pipeline over the data rows inside the
// governing transaction, updating summary counters as it goes.
func (s *IngestService) loadRows(
	ctx context.Context,
	tx repository.Store,
	log zerolog.Logger,
	dataRows [][]string,
	dates []parse.DateColumn,
	summary *model.IngestSummary,
) error {
	// Natural key -> surrogate id, scoped to this load. Resolution stays
	// idempotent without the cache; it only saves round trips.
	contractorIDs := make(map[model.Contractor]int64)
	productIDs := make(map[model.Product]int64)

	for i, cells := range dataRows {
		summary.RowsConsidered++
		row := parse.NewRow(cells)

		fields, class := s.classifier.Classify(row)
		switch class {
		case parse.RowStructural:
			summary.RowsSkippedStructural++
			continue
		case parse.RowSubtotal:
			summary.RowsSkippedSubtotal++
			continue
		}

		contractorKey := model.Contractor{
			HeadContractor: fields.HeadContractor,
			Buyer:          fields.Buyer,
			Manager:        fields.Manager,
			Region:         fields.Region,
		}
		contractorID, ok := contractorIDs[contractorKey]
		if !ok {
			id, err := tx.GetOrCreateContractor(ctx, contractorKey)
			if err != nil {
				return fmt.Errorf("resolve contractor: %w", err)
			}
			contractorIDs[contractorKey] = id
			contractorID = id
		}

		productKey := model.Product{
			Name:            fields.ProductName,
			Characteristics: fields.Characteristics,
			Category:        fields.Category,
		}
		productID, ok := productIDs[productKey]
		if !ok {
			id, err := tx.GetOrCreateProduct(ctx, productKey)
			if err != nil {
				return fmt.Errorf("resolve product: %w", err)
			}
			productIDs[productKey] = id
			productID = id
		}

		tuples, diags := s.classifier.Tuples(row, dates)
		for _, diag := range diags {
			log.Warn().
				Int("row", i).
				Int("column", diag.Column).
				Str("raw", diag.Raw).
				Err(diag.Err).
				Msg("numeric cell unparseable, treated as absent")
		}

		for _, tuple := range tuples {
			order := model.Order{
				ContractorID: contractorID,
				ProductID:    productID,
				OrderDate:    tuple.Date,
				Quantity:     tuple.Quantity,
				Amount:       tuple.Amount,
				FileHash:     summary.FileHash,
			}
			if err := tx.InsertOrder(ctx, order); err != nil {
				return fmt.Errorf("insert order: %w", err)
			}
			summary.OrdersWritten++
		}
		summary.RowsWritten++
	}
	return nil
}

// record writes the audit row for this attempt outside the load transaction
// so failed attempts survive rollback. Audit failures are logged, never
// surfaced: they must not change the load's outcome.
func (s *IngestService) record(ctx context.Context, log zerolog.Logger, summary *model.IngestSummary, started time.Time, cause error) {
	rec := model.IngestFile{
		ID:                    summary.RunID,
		FileName:              summary.FileName,
		FileHash:              summary.FileHash,
		Outcome:               summary.Outcome,
		RowsConsidered:        summary.RowsConsidered,
		RowsWritten:           summary.RowsWritten,
		RowsSkippedStructural: summary.RowsSkippedStructural,
		RowsSkippedSubtotal:   summary.RowsSkippedSubtotal,
		OrdersWritten:         summary.OrdersWritten,
		StartedAt:             started,
		FinishedAt:            time.Now().UTC(),
	}
	if cause != nil {
		msg := cause.Error()
		rec.Error = &msg
	}
	if err := s.store.RecordIngest(ctx, rec); err != nil {
		log.Warn().Err(err).Msg("failed to record ingest audit row")
	}
}
