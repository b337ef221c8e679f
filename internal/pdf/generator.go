package pdf

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/orimex-orders/internal/model"
)

// Generator renders orders reports as PDF. The Cyrillic-capable font is
// loaded from disk once at startup.
type Generator struct {
	fontName string
	fontData []byte
}

func NewGenerator(fontPath string) (*Generator, error) {
	fontData, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read pdf font %s: %w", fontPath, err)
	}
	if len(fontData) == 0 {
		return nil, fmt.Errorf("pdf font %s is empty", fontPath)
	}
	return &Generator{fontName: "NotoSans", fontData: fontData}, nil
}

func (g *Generator) Generate(report model.OrdersReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.AddUTF8FontFromBytes(g.fontName, "", g.fontData)
	pdf.AddUTF8FontFromBytes(g.fontName, "B", g.fontData)

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Отчет по заказам", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Период: с %s по %s", formatDate(report.PeriodStart), formatDate(report.PeriodEnd)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Итоги периода", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Заказов: %d", report.OrderCount), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Общее количество: %.2f", report.TotalQuantity), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Общая сумма: %.2f руб.", report.TotalAmount), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Контрагенты", "", 1, "L", false, 0, "")

	headers := []string{"Головной контрагент", "Покупатель", "Заказов", "Количество", "Сумма"}
	colWidths := []float64{55, 50, 20, 25, 30}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)

	for _, ct := range report.Contractors {
		row := []string{
			ct.HeadContractor,
			ct.Buyer,
			fmt.Sprintf("%d", ct.OrderCount),
			fmt.Sprintf("%.2f", ct.TotalQuantity),
			fmt.Sprintf("%.2f", ct.TotalAmount),
		}
		drawTableRow(pdf, g.fontName, row, colWidths, false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 9)
	for i, col := range cols {
		align := "L"
		if i > 1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("02.01.2006")
}
