package export

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/diillson/sales-report-go/internal/domain/entity"
)

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Arial, Helvetica, sans-serif; color: #323232; margin: 32px; }
header { background: #282828; color: #fff; padding: 16px 20px; }
header p { margin: 4px 0 0; color: #ddd; font-size: 13px; }
h2 { border-bottom: 1px solid #c8c8c8; padding-bottom: 4px; margin-top: 32px; }
table { border-collapse: collapse; width: 100%; font-size: 13px; }
th { text-align: left; border-bottom: 2px solid #282828; padding: 6px; }
td { border-bottom: 1px solid #eee; padding: 6px; }
td.num { text-align: right; }
.chart svg { width: 100%; max-width: 720px; height: auto; }
footer { margin-top: 40px; font-size: 11px; color: #808080; }
</style>
</head>
<body>
<header>
<h1>{{.Title}}</h1>
<p>{{.Subtitle}}</p>
</header>
{{if .Message}}
<section><h2>Result</h2><p>{{.Message}}</p></section>
{{else}}
<section>
<h2>Summary</h2>
<table>
{{range .Summary}}<tr><th>{{index . 0}}</th><td class="num">{{index . 1}}</td></tr>
{{end}}</table>
</section>
{{range .Tables}}
<section>
<h2>{{.Title}}</h2>
<table>
<tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range $i, $c := .}}<td{{if $i}} class="num"{{end}}>{{$c}}</td>{{end}}</tr>
{{end}}</table>
</section>
{{end}}
{{range .Charts}}
<section class="chart">
<h2>{{.Title}}</h2>
{{.SVG}}
</section>
{{end}}
{{end}}
<footer>{{.Footer}}</footer>
</body>
</html>
`))

type htmlTable struct {
	Title   string
	Headers []string
	Rows    [][]string
}

type htmlChart struct {
	Title string
	SVG   template.HTML
}

type htmlPage struct {
	Title    string
	Subtitle string
	Message  string
	Summary  [][2]string
	Tables   []htmlTable
	Charts   []htmlChart
	Footer   string
}

func (r *ExportRepositoryImpl) ExportToHTML(report *entity.ReportPayload, includeCharts bool, filename, outputDir string) (string, error) {
	page, err := buildHTMLPage(report, includeCharts)
	if err != nil {
		return "", err
	}
	return r.writeHTML(page, filename, outputDir)
}

func (r *ExportRepositoryImpl) exportEmptyHTML(filename, outputDir string) (string, error) {
	return r.writeHTML(&htmlPage{
		Title:    "Sales Report",
		Subtitle: "No content",
		Message:  entity.EmptyResultMessage,
		Footer:   fmt.Sprintf("Generated by Sales Report | %s", r.now().Format("2006-01-02")),
	}, filename, outputDir)
}

func (r *ExportRepositoryImpl) writeHTML(page *htmlPage, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "html")
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("error rendering HTML report: %w", err)
	}
	if err := os.WriteFile(outputFilename, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("error writing HTML file: %w", err)
	}
	return filepath.Abs(outputFilename)
}

func buildHTMLPage(report *entity.ReportPayload, includeCharts bool) (*htmlPage, error) {
	s := report.Summary
	page := &htmlPage{
		Title: reportTitle(report),
		Subtitle: fmt.Sprintf("Period: %s | Filters: %s",
			dateRangeText(report.DateRange), filtersText(report.FiltersApplied)),
		Summary: [][2]string{
			{"Total Sales", money(s.TotalSales)},
			{"Transactions", fmt.Sprint(s.TransactionCount)},
			{"Average Sale", money(s.AverageSale)},
			{"Largest Sale", fmt.Sprintf("%s (%s)", money(s.MaxSale.Amount), s.MaxSale.Date)},
			{"Smallest Sale", fmt.Sprintf("%s (%s)", money(s.MinSale.Amount), s.MinSale.Date)},
		},
		Footer: fmt.Sprintf("Generated by Sales Report | %s | %s",
			report.GeneratedAt.Format("2006-01-02 15:04:05"), report.ID),
	}

	if g := report.Grouping; g != nil {
		t := htmlTable{
			Title:   "Sales by " + title(g.By),
			Headers: []string{title(g.By), "Count", "Total", "Average", "Share"},
		}
		for _, key := range g.Keys() {
			e := g.Groups[key]
			t.Rows = append(t.Rows, []string{key, fmt.Sprint(e.Count), money(e.Total), money(e.Average), percent(e.Percentage)})
		}
		page.Tables = append(page.Tables, t)
	}

	if f := report.Forecast; f != nil {
		page.Summary = append(page.Summary, [2]string{"Average Monthly Growth", percent(f.AverageGrowthRate)})
		page.Tables = append(page.Tables, htmlTable{
			Title:   "Monthly Sales",
			Headers: []string{"Month", "Sales", "Growth"},
			Rows:    forecastRows(f),
		})
		projected := htmlTable{Title: "Projected Sales", Headers: []string{"Month", "Projected"}}
		for _, p := range f.ProjectedSales {
			projected.Rows = append(projected.Rows, []string{p.Month.String(), money(p.Amount)})
		}
		page.Tables = append(page.Tables, projected)
	}

	if len(report.Transactions) > 0 {
		attrs := attributeColumns(report.Transactions)
		t := htmlTable{
			Title:   "Transactions",
			Headers: append([]string{"Date", "Amount", "Tax", "Cost", "Pre-tax", "Profit", "Margin"}, attrs...),
		}
		for _, tx := range report.Transactions {
			row := []string{
				tx.DateString(), money(tx.Amount), optionalMoney(tx.Tax), optionalMoney(tx.Cost),
				optionalMoney(tx.PreTax), optionalMoney(tx.Profit), optionalPercent(tx.Margin),
			}
			for _, a := range attrs {
				row = append(row, tx.Attribute(a))
			}
			t.Rows = append(t.Rows, row)
		}
		page.Tables = append(page.Tables, t)
	}

	if includeCharts {
		for _, name := range report.Charts.Names() {
			series := report.Charts[name]
			if series.Len() == 0 {
				continue
			}
			render := svgBars
			if name == entity.ChartSalesOverTime {
				render = svgLine
			}
			svg, err := render(chartTitle(name), series.Floats(), series.Labels)
			if err != nil {
				return nil, fmt.Errorf("error rendering chart %s: %w", name, err)
			}
			page.Charts = append(page.Charts, htmlChart{Title: chartTitle(name), SVG: svg})
		}
	}

	return page, nil
}
