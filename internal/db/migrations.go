package db

import (
	"fmt"

	"gorm.io/gorm"
)

// Normalized order store. Every statement is idempotent: repeated runs
// across process restarts never fail and never touch existing data. The
// unique natural-key constraints back the get-or-create dedup of the entity
// repository.
var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS contractors (
		id BIGSERIAL PRIMARY KEY,
		head_contractor TEXT NOT NULL,
		buyer TEXT NOT NULL,
		manager TEXT NOT NULL DEFAULT '',
		region TEXT NOT NULL DEFAULT '',
		UNIQUE (head_contractor, buyer, manager, region)
	);`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		characteristics TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		UNIQUE (name, characteristics, category)
	);`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		contractor_id BIGINT NOT NULL REFERENCES contractors(id),
		product_id BIGINT NOT NULL REFERENCES products(id),
		order_date DATE NOT NULL,
		quantity DOUBLE PRECISION NOT NULL,
		amount DOUBLE PRECISION,
		file_hash VARCHAR(32) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_orders_date ON orders (order_date);`,
	`CREATE INDEX IF NOT EXISTS idx_orders_contractor ON orders (contractor_id);`,
	`CREATE INDEX IF NOT EXISTS idx_orders_product ON orders (product_id);`,
	`CREATE INDEX IF NOT EXISTS idx_orders_file_hash ON orders (file_hash);`,
	`CREATE TABLE IF NOT EXISTS ingest_files (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		file_name TEXT NOT NULL,
		file_hash VARCHAR(32) NOT NULL,
		outcome VARCHAR(16) NOT NULL,
		rows_considered INTEGER NOT NULL DEFAULT 0,
		rows_written INTEGER NOT NULL DEFAULT 0,
		rows_skipped_structural INTEGER NOT NULL DEFAULT 0,
		rows_skipped_subtotal INTEGER NOT NULL DEFAULT 0,
		orders_written INTEGER NOT NULL DEFAULT 0,
		error TEXT,
		started_at TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_ingest_files_hash ON ingest_files (file_hash);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
