package repository

import (
	"context"

	"github.com/nurpe/orimex-orders/internal/model"
)

// Get-or-create entity resolution. Lookup-then-insert is idempotent for
// repeated calls with the same natural key within one load; the unique
// constraints on the full natural key back it at the schema level. It is not
// safe against concurrent loads from independent processes — callers
// serialize loads.

func (r *IngestRepository) GetOrCreateContractor(ctx context.Context, c model.Contractor) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT id FROM contractors
		WHERE head_contractor = ? AND buyer = ? AND manager = ? AND region = ?
		LIMIT 1
	`, c.HeadContractor, c.Buyer, c.Manager, c.Region).Scan(&id).Error
	if err != nil {
		return 0, err
	}
	if id != 0 {
		return id, nil
	}

	err = r.db.WithContext(ctx).Raw(`
		INSERT INTO contractors (head_contractor, buyer, manager, region)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`, c.HeadContractor, c.Buyer, c.Manager, c.Region).Scan(&id).Error
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *IngestRepository) GetOrCreateProduct(ctx context.Context, p model.Product) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT id FROM products
		WHERE name = ? AND characteristics = ? AND category = ?
		LIMIT 1
	`, p.Name, p.Characteristics, p.Category).Scan(&id).Error
	if err != nil {
		return 0, err
	}
	if id != 0 {
		return id, nil
	}

	err = r.db.WithContext(ctx).Raw(`
		INSERT INTO products (name, characteristics, category)
		VALUES (?, ?, ?)
		RETURNING id
	`, p.Name, p.Characteristics, p.Category).Scan(&id).Error
	if err != nil {
		return 0, err
	}
	return id, nil
}
