package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/orimex-orders/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(report model.OrdersReport) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Сводка"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, report); err != nil {
		return nil, err
	}

	contractorsSheet := "Контрагенты"
	if _, err := file.NewSheet(contractorsSheet); err != nil {
		return nil, err
	}
	if err := g.writeContractors(file, contractorsSheet, report); err != nil {
		return nil, err
	}

	dailySheet := "По дням"
	if _, err := file.NewSheet(dailySheet); err != nil {
		return nil, err
	}
	if err := g.writeDaily(file, dailySheet, report); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, report model.OrdersReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Отчет по заказам")
	set("A2", "Начало периода")
	set("B2", formatDate(report.PeriodStart))
	set("A3", "Конец периода")
	set("B3", formatDate(report.PeriodEnd))
	set("A4", "Количество заказов")
	set("B4", report.OrderCount)
	set("A5", "Общее количество")
	set("B5", formatFloat(report.TotalQuantity))
	set("A6", "Общая сумма")
	set("B6", formatFloat(report.TotalAmount))

	_ = file.SetColWidth(sheet, "A", "A", 28)
	_ = file.SetColWidth(sheet, "B", "B", 18)
	return nil
}

func (g *Generator) writeContractors(file *excelize.File, sheet string, report model.OrdersReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"Головной контрагент",
		"Покупатель",
		"Регион",
		"Заказов",
		"Количество",
		"Сумма",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, ct := range report.Contractors {
		row := i + 2
		set(fmt.Sprintf("A%d", row), ct.HeadContractor)
		set(fmt.Sprintf("B%d", row), ct.Buyer)
		set(fmt.Sprintf("C%d", row), ct.Region)
		set(fmt.Sprintf("D%d", row), ct.OrderCount)
		set(fmt.Sprintf("E%d", row), formatFloat(ct.TotalQuantity))
		set(fmt.Sprintf("F%d", row), formatFloat(ct.TotalAmount))
	}

	_ = file.SetColWidth(sheet, "A", "B", 36)
	_ = file.SetColWidth(sheet, "C", "C", 20)
	_ = file.SetColWidth(sheet, "D", "F", 14)
	return nil
}

func (g *Generator) writeDaily(file *excelize.File, sheet string, report model.OrdersReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{"Дата", "Заказов", "Количество", "Сумма"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, day := range report.Days {
		row := i + 2
		set(fmt.Sprintf("A%d", row), formatDate(day.OrderDate))
		set(fmt.Sprintf("B%d", row), day.OrderCount)
		set(fmt.Sprintf("C%d", row), formatFloat(day.TotalQuantity))
		set(fmt.Sprintf("D%d", row), formatFloat(day.TotalAmount))
	}

	_ = file.SetColWidth(sheet, "A", "A", 14)
	_ = file.SetColWidth(sheet, "B", "D", 14)
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatFloat(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
