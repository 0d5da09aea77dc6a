package export

import (
	"fmt"
	"path/filepath"

	"github.com/diillson/sales-report-go/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary      = "Summary"
	sheetGrouping     = "Grouping"
	sheetTransactions = "Transactions"
	sheetForecast     = "Forecast"
	sheetCharts       = "Charts"
)

// workbook encapsula o arquivo excelize e o estilo de cabeçalho compartilhado.
type workbook struct {
	f      *excelize.File
	header int
}

func newWorkbook() (*workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		f.Close()
		return nil, err
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"282828"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	return &workbook{f: f, header: header}, nil
}

// writeRows grava headers na linha 1 e rows a partir da linha 2.
func (w *workbook) writeRows(sheet string, headers []interface{}, rows [][]interface{}) error {
	if err := w.f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := w.f.SetCellStyle(sheet, "A1", last, w.header); err != nil {
		return err
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := w.f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	return w.f.SetColWidth(sheet, "A", lastCol, 16)
}

func (w *workbook) addSheet(name string, headers []interface{}, rows [][]interface{}) error {
	if _, err := w.f.NewSheet(name); err != nil {
		return err
	}
	return w.writeRows(name, headers, rows)
}

func (w *workbook) save(path string) error {
	defer w.f.Close()
	return w.f.SaveAs(path)
}

func (r *ExportRepositoryImpl) ExportToExcel(report *entity.ReportPayload, includeCharts bool, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "xlsx")
	if err != nil {
		return "", err
	}

	w, err := newWorkbook()
	if err != nil {
		return "", fmt.Errorf("error creating workbook: %w", err)
	}

	if err := writeExcelReport(w, report, includeCharts); err != nil {
		w.f.Close()
		return "", fmt.Errorf("error building workbook: %w", err)
	}

	if err := w.save(outputFilename); err != nil {
		return "", fmt.Errorf("error writing Excel file: %w", err)
	}
	return filepath.Abs(outputFilename)
}

func writeExcelReport(w *workbook, report *entity.ReportPayload, includeCharts bool) error {
	s := report.Summary
	summary := [][]interface{}{
		{"Report ID", report.ID.String()},
		{"Report Type", string(report.ReportType)},
		{"Generated At", report.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Period", dateRangeText(report.DateRange)},
		{"Filters", filtersText(report.FiltersApplied)},
		{"Total Sales", number(s.TotalSales)},
		{"Transactions", s.TransactionCount},
		{"Average Sale", number(s.AverageSale)},
		{"Largest Sale", number(s.MaxSale.Amount)},
		{"Largest Sale Date", s.MaxSale.Date},
		{"Smallest Sale", number(s.MinSale.Amount)},
		{"Smallest Sale Date", s.MinSale.Date},
	}
	if err := w.writeRows(sheetSummary, []interface{}{"Metric", "Value"}, summary); err != nil {
		return err
	}

	if g := report.Grouping; g != nil {
		rows := make([][]interface{}, 0, g.Len())
		for _, key := range g.Keys() {
			e := g.Groups[key]
			rows = append(rows, []interface{}{key, e.Count, number(e.Total), number(e.Average), number(e.Percentage)})
		}
		headers := []interface{}{title(g.By), "Count", "Total", "Average", "Share (%)"}
		if err := w.addSheet(sheetGrouping, headers, rows); err != nil {
			return err
		}
	}

	if len(report.Transactions) > 0 {
		attrs := attributeColumns(report.Transactions)
		headers := []interface{}{"Date", "Amount", "Tax", "Cost", "Pre-tax", "Profit", "Margin (%)"}
		for _, a := range attrs {
			headers = append(headers, a)
		}
		rows := make([][]interface{}, 0, len(report.Transactions))
		for _, t := range report.Transactions {
			row := []interface{}{
				t.DateString(), number(t.Amount), optionalNumber(t.Tax), optionalNumber(t.Cost),
				optionalNumber(t.PreTax), optionalNumber(t.Profit), optionalNumber(t.Margin),
			}
			for _, a := range attrs {
				row = append(row, attributeCell(t.Transaction, a))
			}
			rows = append(rows, row)
		}
		if err := w.addSheet(sheetTransactions, headers, rows); err != nil {
			return err
		}
	}

	if f := report.Forecast; f != nil {
		rows := make([][]interface{}, 0, len(f.MonthlySales)+len(f.ProjectedSales))
		for _, m := range f.MonthlySales {
			var growth interface{}
			if rate, ok := f.GrowthRates.Get(m.Month); ok {
				growth = number(rate)
			}
			rows = append(rows, []interface{}{m.Month.String(), number(m.Amount), growth, "actual"})
		}
		for _, p := range f.ProjectedSales {
			rows = append(rows, []interface{}{p.Month.String(), number(p.Amount), nil, "projected"})
		}
		rows = append(rows, []interface{}{"Average Growth (%)", number(f.AverageGrowthRate)})
		if err := w.addSheet(sheetForecast, []interface{}{"Month", "Sales", "Growth (%)", "Kind"}, rows); err != nil {
			return err
		}
	}

	if includeCharts && len(report.Charts) > 0 {
		return writeExcelCharts(w, report.Charts)
	}
	return nil
}

// writeExcelCharts grava cada série em um par de colunas da aba Charts e ancora um gráfico
// nativo abaixo dos dados.
func writeExcelCharts(w *workbook, charts entity.Charts) error {
	if _, err := w.f.NewSheet(sheetCharts); err != nil {
		return err
	}

	longest := 0
	for _, c := range charts {
		if c.Len() > longest {
			longest = c.Len()
		}
	}
	anchorRow := longest + 4

	for i, name := range charts.Names() {
		series := charts[name]
		labelCol, err := excelize.ColumnNumberToName(i*2 + 1)
		if err != nil {
			return err
		}
		valueCol, err := excelize.ColumnNumberToName(i*2 + 2)
		if err != nil {
			return err
		}

		if err := w.f.SetCellValue(sheetCharts, labelCol+"1", chartTitle(name)); err != nil {
			return err
		}
		if err := w.f.SetCellStyle(sheetCharts, labelCol+"1", valueCol+"1", w.header); err != nil {
			return err
		}
		for j, label := range series.Labels {
			row := j + 2
			if err := w.f.SetCellValue(sheetCharts, fmt.Sprintf("%s%d", labelCol, row), label); err != nil {
				return err
			}
			if err := w.f.SetCellValue(sheetCharts, fmt.Sprintf("%s%d", valueCol, row), number(series.Data[j])); err != nil {
				return err
			}
		}
		if series.Len() == 0 {
			continue
		}

		chartType := excelize.Pie
		if name == entity.ChartSalesOverTime {
			chartType = excelize.Line
		}
		lastRow := series.Len() + 1
		chart := &excelize.Chart{
			Type: chartType,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$%s$1", sheetCharts, labelCol),
				Categories: fmt.Sprintf("%s!$%s$2:$%s$%d", sheetCharts, labelCol, labelCol, lastRow),
				Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", sheetCharts, valueCol, valueCol, lastRow),
			}},
			Title: []excelize.RichTextRun{{Text: chartTitle(name)}},
		}
		anchor := fmt.Sprintf("A%d", anchorRow+i*20)
		if err := w.f.AddChart(sheetCharts, anchor, chart); err != nil {
			return err
		}
	}
	return nil
}

func (r *ExportRepositoryImpl) exportEmptyExcel(filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "xlsx")
	if err != nil {
		return "", err
	}

	w, err := newWorkbook()
	if err != nil {
		return "", fmt.Errorf("error creating workbook: %w", err)
	}
	rows := [][]interface{}{{entity.EmptyResultMessage}}
	if err := w.writeRows(sheetSummary, []interface{}{"Message"}, rows); err != nil {
		w.f.Close()
		return "", fmt.Errorf("error building workbook: %w", err)
	}
	if err := w.save(outputFilename); err != nil {
		return "", fmt.Errorf("error writing Excel file: %w", err)
	}
	return filepath.Abs(outputFilename)
}

func number(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func optionalNumber(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return number(*d)
}

// attributeCell mantém números e booleanos tipados na planilha.
func attributeCell(t entity.Transaction, name string) interface{} {
	v, ok := t.Attributes[name]
	if !ok {
		return nil
	}
	switch v.Kind() {
	case entity.KindNumber:
		d, _ := v.Decimal()
		return number(d)
	case entity.KindBool:
		return v.String() == "true"
	default:
		return v.String()
	}
}
