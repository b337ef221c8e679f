package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nurpe/orimex-orders/internal/model"
	"github.com/nurpe/orimex-orders/internal/repository"
)

// ExcelGenerator renders an orders report as an .xlsx workbook.
type ExcelGenerator interface {
	Generate(report model.OrdersReport) ([]byte, error)
}

// PDFGenerator renders an orders report as a PDF document.
type PDFGenerator interface {
	Generate(report model.OrdersReport) ([]byte, error)
}

// ReportService serves the read-only aggregate surfaces over committed
// orders. It owes downstream consumers nothing beyond immutability of
// written rows and the "quantity positive, amount possibly null" invariant.
type ReportService struct {
	repo  *repository.ReportRepository
	excel ExcelGenerator
	pdf   PDFGenerator
}

type ReportPeriodInput struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
}

type ExportResult struct {
	FileName string
	Content  []byte
}

func NewReportService(repo *repository.ReportRepository, excel ExcelGenerator, pdf PDFGenerator) *ReportService {
	return &ReportService{repo: repo, excel: excel, pdf: pdf}
}

func (s *ReportService) Stats(ctx context.Context) (*model.StoreStats, error) {
	return s.repo.Stats(ctx)
}

func (s *ReportService) ExportOrdersXLSX(ctx context.Context, input ReportPeriodInput) (*ExportResult, error) {
	report, err := s.buildReport(ctx, input)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Generate(*report)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: buildFileName(*report, "xlsx"),
		Content:  content,
	}, nil
}

func (s *ReportService) ExportOrdersPDF(ctx context.Context, input ReportPeriodInput) (*ExportResult, error) {
	report, err := s.buildReport(ctx, input)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(*report)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: buildFileName(*report, "pdf"),
		Content:  content,
	}, nil
}

func (s *ReportService) buildReport(ctx context.Context, input ReportPeriodInput) (*model.OrdersReport, error) {
	if input.PeriodStart.IsZero() || input.PeriodEnd.IsZero() {
		return nil, fmt.Errorf("%w: period dates are required", ErrInvalidInput)
	}

	periodStart := dateOnly(input.PeriodStart)
	periodEnd := dateOnly(input.PeriodEnd)
	if periodStart.After(periodEnd) {
		return nil, fmt.Errorf("%w: period_start must be before or equal to period_end", ErrInvalidInput)
	}
	endExclusive := periodEnd.Add(24 * time.Hour)

	count, quantity, amount, err := s.repo.OrderTotals(ctx, periodStart, endExclusive)
	if err != nil {
		return nil, err
	}
	contractors, err := s.repo.ContractorTotals(ctx, periodStart, endExclusive)
	if err != nil {
		return nil, err
	}
	days, err := s.repo.DailyTotals(ctx, periodStart, endExclusive)
	if err != nil {
		return nil, err
	}

	return &model.OrdersReport{
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		OrderCount:    count,
		TotalQuantity: quantity,
		TotalAmount:   amount,
		Contractors:   contractors,
		Days:          days,
	}, nil
}

func buildFileName(report model.OrdersReport, ext string) string {
	return fmt.Sprintf("orders-%s-%s.%s",
		report.PeriodStart.Format("20060102"),
		report.PeriodEnd.Format("20060102"),
		ext,
	)
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
