package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nurpe/orimex-orders/internal/model"
)

// ReportRepository serves the read-only aggregate queries of the reporting
// surfaces. It never mutates the store.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Stats(ctx context.Context) (*model.StoreStats, error) {
	var row struct {
		Contractors    int64
		Products       int64
		Orders         int64
		TotalQuantity  float64
		TotalAmount    float64
		FirstOrderDate *time.Time
		LastOrderDate  *time.Time
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM contractors) AS contractors,
			(SELECT COUNT(*) FROM products) AS products,
			COUNT(o.id) AS orders,
			COALESCE(SUM(o.quantity), 0) AS total_quantity,
			COALESCE(SUM(o.amount), 0) AS total_amount,
			MIN(o.order_date) AS first_order_date,
			MAX(o.order_date) AS last_order_date
		FROM orders o
	`).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &model.StoreStats{
		Contractors:    row.Contractors,
		Products:       row.Products,
		Orders:         row.Orders,
		TotalQuantity:  row.TotalQuantity,
		TotalAmount:    row.TotalAmount,
		FirstOrderDate: row.FirstOrderDate,
		LastOrderDate:  row.LastOrderDate,
	}, nil
}

func (r *ReportRepository) OrderTotals(ctx context.Context, from, to time.Time) (count int64, quantity, amount float64, err error) {
	var row struct {
		OrderCount    int64
		TotalQuantity float64
		TotalAmount   float64
	}
	err = r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS order_count,
			COALESCE(SUM(quantity), 0) AS total_quantity,
			COALESCE(SUM(amount), 0) AS total_amount
		FROM orders
		WHERE order_date >= ? AND order_date < ?
	`, from, to).Scan(&row).Error
	if err != nil {
		return 0, 0, 0, err
	}
	return row.OrderCount, row.TotalQuantity, row.TotalAmount, nil
}

func (r *ReportRepository) ContractorTotals(ctx context.Context, from, to time.Time) ([]model.ContractorTotal, error) {
	var rows []model.ContractorTotal
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			c.id AS contractor_id,
			c.head_contractor,
			c.buyer,
			c.region,
			COUNT(o.id) AS order_count,
			COALESCE(SUM(o.quantity), 0) AS total_quantity,
			COALESCE(SUM(o.amount), 0) AS total_amount
		FROM orders o
		JOIN contractors c ON c.id = o.contractor_id
		WHERE o.order_date >= ? AND o.order_date < ?
		GROUP BY c.id, c.head_contractor, c.buyer, c.region
		ORDER BY total_amount DESC, c.head_contractor ASC
	`, from, to).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) DailyTotals(ctx context.Context, from, to time.Time) ([]model.DailyTotal, error) {
	var rows []model.DailyTotal
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			order_date,
			COUNT(*) AS order_count,
			COALESCE(SUM(quantity), 0) AS total_quantity,
			COALESCE(SUM(amount), 0) AS total_amount
		FROM orders
		WHERE order_date >= ? AND order_date < ?
		GROUP BY order_date
		ORDER BY order_date ASC
	`, from, to).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
