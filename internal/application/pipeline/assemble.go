package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/diillson/sales-report-go/internal/domain/entity"
)

// BuildBaseReport assembles the report envelope and summary. The date range and filters are
// echoed exactly as requested, nil included.
func BuildBaseReport(
	id uuid.UUID,
	reportType entity.ReportType,
	generatedAt time.Time,
	dateRange *entity.DateRange,
	filters entity.FilterSet,
	metrics entity.Metrics,
) *entity.ReportPayload {
	return &entity.ReportPayload{
		ID:             id,
		ReportType:     reportType,
		GeneratedAt:    generatedAt,
		DateRange:      dateRange,
		FiltersApplied: filters,
		Summary: entity.Summary{
			TotalSales:       metrics.Total,
			TransactionCount: metrics.Count,
			AverageSale:      metrics.Average,
			MaxSale:          saleExtreme(metrics.Max),
			MinSale:          saleExtreme(metrics.Min),
		},
	}
}

func saleExtreme(t entity.Transaction) entity.SaleExtreme {
	return entity.SaleExtreme{
		Amount:  t.Amount,
		Date:    t.DateString(),
		Details: t,
	}
}
