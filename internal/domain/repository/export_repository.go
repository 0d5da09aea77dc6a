package repository

import (
	"github.com/diillson/sales-report-go/internal/domain/entity"
)

// ExportRepository renders report payloads into artifacts and returns the artifact path.
type ExportRepository interface {
	ExportToHTML(report *entity.ReportPayload, includeCharts bool, filename, outputDir string) (string, error)
	ExportToExcel(report *entity.ReportPayload, includeCharts bool, filename, outputDir string) (string, error)
	ExportToPDF(report *entity.ReportPayload, includeCharts bool, filename, outputDir string) (string, error)
	ExportToJSON(v interface{}, filename, outputDir string) (string, error)

	// ExportEmpty renders the "no data" document for a non-json format.
	ExportEmpty(format entity.OutputFormat, filename, outputDir string) (string, error)
}
