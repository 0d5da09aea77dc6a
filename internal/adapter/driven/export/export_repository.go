package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/diillson/sales-report-go/internal/domain/entity"
	"github.com/diillson/sales-report-go/internal/domain/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	now func() time.Time
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{now: time.Now}
}

// ExportToJSON grava v (payload ou resultado vazio) como JSON indentado.
func (r *ExportRepositoryImpl) ExportToJSON(v interface{}, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportEmpty gera o documento "sem dados" no formato pedido.
func (r *ExportRepositoryImpl) ExportEmpty(format entity.OutputFormat, filename, outputDir string) (string, error) {
	switch format {
	case entity.FormatPDF:
		return r.exportEmptyPDF(filename, outputDir)
	case entity.FormatExcel:
		return r.exportEmptyExcel(filename, outputDir)
	case entity.FormatHTML:
		return r.exportEmptyHTML(filename, outputDir)
	case entity.FormatJSON:
		return r.ExportToJSON(entity.NewEmptyResult(), filename, outputDir)
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

// --- Funções Auxiliares ---

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func (r *ExportRepositoryImpl) generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	if strings.TrimSpace(base) == "" {
		base = "sales_report"
	}
	timestamp := r.now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func percent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}

func optionalMoney(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return money(*d)
}

func optionalPercent(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return percent(*d)
}

func reportTitle(report *entity.ReportPayload) string {
	return fmt.Sprintf("Sales Report (%s)", title(string(report.ReportType)))
}

func dateRangeText(dr *entity.DateRange) string {
	if dr == nil {
		return "All dates"
	}
	return fmt.Sprintf("%s to %s", dr.Start, dr.End)
}

func filtersText(fs entity.FilterSet) string {
	if len(fs) == 0 {
		return "None"
	}
	return fs.String()
}

// attributeColumns lista os atributos presentes em qualquer transação, em ordem lexical.
func attributeColumns(txs []entity.DetailedTransaction) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, t := range txs {
		for _, name := range t.AttributeNames() {
			if !seen[name] {
				seen[name] = true
				cols = append(cols, name)
			}
		}
	}
	sort.Strings(cols)
	return cols
}

func chartTitle(name string) string {
	if name == entity.ChartSalesOverTime {
		return "Sales Over Time"
	}
	field := strings.TrimPrefix(name, "sales_by_")
	return "Sales by " + title(strings.ReplaceAll(field, "_", " "))
}

// title usa um Caser novo por chamada; cases.Caser guarda estado.
func title(s string) string {
	return cases.Title(language.English).String(s)
}
