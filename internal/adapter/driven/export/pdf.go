package export

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/diillson/sales-report-go/internal/domain/entity"
	"github.com/jung-kurt/gofpdf"
)

var (
	headerColor       = [3]int{40, 40, 40}
	headerTextColor   = [3]int{255, 255, 255}
	sectionTitleColor = [3]int{0, 0, 0}
	bodyTextColor     = [3]int{50, 50, 50}
	lineColor         = [3]int{200, 200, 200}
	barColor          = [3]int{37, 99, 235}
	negativeBarColor  = [3]int{192, 0, 0}
)

// pdfWriter agrupa o documento e as funções de desenho usadas em todas as seções.
type pdfWriter struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func newPDFWriter(footer string) *pdfWriter {
	pdf := gofpdf.New("P", "mm", "A4", "")
	w := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, w.tr(footer), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})
	return w
}

func (w *pdfWriter) header(title, subtitle string) {
	pdf := w.pdf
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, w.tr("  "+title), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, w.tr("  "+subtitle), "", 1, "L", true, 0, "")
	pdf.Ln(8)
}

func (w *pdfWriter) sectionTitle(title string) {
	pdf := w.pdf
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
	pdf.Cell(0, 8, w.tr(title))
	pdf.Ln(7)

	pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
	pdf.Ln(4)
}

func (w *pdfWriter) section(title, content string) {
	if strings.TrimSpace(content) == "" {
		return
	}
	w.sectionTitle(title)
	w.pdf.SetFont("Arial", "", 10)
	w.pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	w.pdf.MultiCell(190, 5, w.tr(content), "", "L", false)
	w.pdf.Ln(8)
}

// table desenha uma tabela simples; colunas além da primeira são alinhadas à direita.
func (w *pdfWriter) table(title string, headers []string, widths []float64, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	pdf := w.pdf
	w.sectionTitle(title)

	pdf.SetFont("Arial", "B", 9)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, w.tr(h), "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		for i, cell := range row {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, w.tr(cell), "", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(8)
}

// bars desenha uma série como barras horizontais proporcionais ao maior valor absoluto.
func (w *pdfWriter) bars(title string, series entity.ChartSeries) {
	if series.Len() == 0 {
		return
	}
	pdf := w.pdf
	w.sectionTitle(title)

	values := series.Floats()
	maxAbs := 0.0
	for _, v := range values {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}

	const labelWidth, barWidth, valueWidth = 40.0, 110.0, 40.0
	pdf.SetFont("Arial", "", 8)
	for i, label := range series.Labels {
		if len(label) > 24 {
			label = label[:21] + "..."
		}
		pdf.CellFormat(labelWidth, 6, w.tr(label), "", 0, "L", false, 0, "")

		x, y := pdf.GetX(), pdf.GetY()
		length := 0.0
		if maxAbs > 0 {
			length = math.Abs(values[i]) / maxAbs * barWidth
		}
		c := barColor
		if values[i] < 0 {
			c = negativeBarColor
		}
		pdf.SetFillColor(c[0], c[1], c[2])
		if length > 0 {
			pdf.Rect(x, y+1, length, 4, "F")
		}
		pdf.SetX(x + barWidth)
		pdf.CellFormat(valueWidth, 6, money(series.Data[i]), "", 1, "R", false, 0, "")
	}
	pdf.Ln(8)
}

func (r *ExportRepositoryImpl) ExportToPDF(report *entity.ReportPayload, includeCharts bool, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	w := newPDFWriter(fmt.Sprintf("Generated by Sales Report | %s | %s",
		report.GeneratedAt.Format("2006-01-02 15:04:05"), report.ID))
	w.pdf.AddPage()
	w.header(reportTitle(report), fmt.Sprintf("Period: %s  |  Filters: %s",
		dateRangeText(report.DateRange), filtersText(report.FiltersApplied)))

	s := report.Summary
	w.section("Summary", strings.Join([]string{
		fmt.Sprintf("Total Sales: %s", money(s.TotalSales)),
		fmt.Sprintf("Transactions: %d", s.TransactionCount),
		fmt.Sprintf("Average Sale: %s", money(s.AverageSale)),
		fmt.Sprintf("Largest Sale: %s on %s", money(s.MaxSale.Amount), s.MaxSale.Date),
		fmt.Sprintf("Smallest Sale: %s on %s", money(s.MinSale.Amount), s.MinSale.Date),
	}, "\n"))

	if g := report.Grouping; g != nil {
		rows := make([][]string, 0, g.Len())
		for _, key := range g.Keys() {
			e := g.Groups[key]
			rows = append(rows, []string{key, fmt.Sprint(e.Count), money(e.Total), money(e.Average), percent(e.Percentage)})
		}
		w.table("Sales by "+title(g.By), []string{title(g.By), "Count", "Total", "Average", "Share"},
			[]float64{70, 20, 35, 35, 30}, rows)
	}

	if f := report.Forecast; f != nil {
		w.section("Forecast", fmt.Sprintf("Average monthly growth: %s", percent(f.AverageGrowthRate)))
		w.table("Monthly Sales", []string{"Month", "Sales", "Growth"}, []float64{70, 60, 60}, forecastRows(f))
		projected := make([][]string, 0, len(f.ProjectedSales))
		for _, p := range f.ProjectedSales {
			projected = append(projected, []string{p.Month.String(), money(p.Amount)})
		}
		w.table("Projected Sales", []string{"Month", "Projected"}, []float64{70, 60}, projected)
	}

	if len(report.Transactions) > 0 {
		rows := make([][]string, 0, len(report.Transactions))
		for _, t := range report.Transactions {
			rows = append(rows, []string{
				t.DateString(), money(t.Amount), optionalMoney(t.Tax), optionalMoney(t.Cost),
				optionalMoney(t.PreTax), optionalMoney(t.Profit), optionalPercent(t.Margin),
			})
		}
		w.table("Transactions", []string{"Date", "Amount", "Tax", "Cost", "Pre-tax", "Profit", "Margin"},
			[]float64{28, 28, 24, 24, 30, 30, 26}, rows)
	}

	if includeCharts {
		for _, name := range report.Charts.Names() {
			w.bars(chartTitle(name), report.Charts[name])
		}
	}

	if err := w.pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) exportEmptyPDF(filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	w := newPDFWriter(fmt.Sprintf("Generated by Sales Report | %s", r.now().Format("2006-01-02")))
	w.pdf.AddPage()
	w.header("Sales Report", "No content")
	w.section("Result", entity.EmptyResultMessage)

	if err := w.pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}
	return filepath.Abs(outputFilename)
}

// forecastRows junta vendas mensais e taxas de crescimento; meses sem taxa ficam com "-".
func forecastRows(f *entity.Forecast) [][]string {
	rows := make([][]string, 0, len(f.MonthlySales))
	for _, m := range f.MonthlySales {
		growth := "-"
		if rate, ok := f.GrowthRates.Get(m.Month); ok {
			growth = percent(rate)
		}
		rows = append(rows, []string{m.Month.String(), money(m.Amount), growth})
	}
	return rows
}
