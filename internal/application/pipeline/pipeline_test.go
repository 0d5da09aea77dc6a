package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/sales-report-go/internal/domain/entity"
	"github.com/diillson/sales-report-go/internal/shared/types"
)

var (
	fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	fixedID  = uuid.MustParse("7f1c9a52-3b0e-4d8a-9a51-0c2b1e7d4f10")
)

func testOptions() []Option {
	return []Option{
		WithClock(FixedClock(fixedNow)),
		WithIDGenerator(func() uuid.UUID { return fixedID }),
	}
}

func sampleSales(t *testing.T) []entity.Transaction {
	return []entity.Transaction{
		sale(t, "2024-01-05", "100", "region", "North", "cost", "60"),
		sale(t, "2024-01-20", "50", "region", "South", "tax", "5"),
		sale(t, "2024-02-03", "150", "region", "North"),
		sale(t, "2024-02-25", "75", "product", "Pen"),
	}
}

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *types.ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	return verr.Fields
}

func TestValidate_EmptyTransactions(t *testing.T) {
	// When
	err := Validate(entity.ReportRequest{ReportType: entity.ReportSummary, OutputFormat: entity.FormatJSON})

	// Then
	assert.True(t, errors.Is(err, types.ErrValidation))
	assert.Contains(t, validationFields(t, err), "sales_data")
}

func TestValidate_UnknownTypeAndFormat(t *testing.T) {
	// When
	err := Validate(entity.ReportRequest{
		Transactions: sampleSales(t),
		ReportType:   "weekly",
		OutputFormat: "docx",
	})

	// Then
	fields := validationFields(t, err)
	assert.Contains(t, fields, "report_type")
	assert.Contains(t, fields, "output_format")
}

func TestValidate_DateRange(t *testing.T) {
	tests := []struct {
		name      string
		dateRange *entity.DateRange
		wantField string
	}{
		{"missing end", &entity.DateRange{Start: "2024-01-01"}, "date_range.end"},
		{"missing start", &entity.DateRange{End: "2024-01-01"}, "date_range.start"},
		{"bad format", &entity.DateRange{Start: "2024/01/01", End: "2024-01-31"}, "date_range.start"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(entity.ReportRequest{
				Transactions: sampleSales(t),
				ReportType:   entity.ReportSummary,
				OutputFormat: entity.FormatJSON,
				DateRange:    tt.dateRange,
			})
			assert.Contains(t, validationFields(t, err), tt.wantField)
		})
	}
}

func TestValidate_AcceptsWellFormedRequest(t *testing.T) {
	err := Validate(entity.ReportRequest{
		Transactions: sampleSales(t),
		ReportType:   entity.ReportForecast,
		OutputFormat: entity.FormatExcel,
		DateRange:    &entity.DateRange{Start: "2024-01-01", End: "2024-12-31"},
	})
	assert.NoError(t, err)
}

func TestPipeline_StagesMustRunInOrder(t *testing.T) {
	// Given
	p := New(entity.ReportRequest{
		Transactions: sampleSales(t),
		ReportType:   entity.ReportSummary,
		OutputFormat: entity.FormatJSON,
	}, testOptions()...)

	// When
	errAggregate := p.Aggregate()
	_, errFinalize := p.Finalize()

	// Then
	assert.True(t, errors.Is(errAggregate, types.ErrStageOrder))
	assert.True(t, errors.Is(errFinalize, types.ErrStageOrder))
	assert.Equal(t, StageNew, p.Stage())

	ok, err := p.Filter()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, StageFiltered, p.Stage())

	_, err = p.Filter()
	assert.True(t, errors.Is(err, types.ErrStageOrder), "a stage cannot run twice")
}

func TestRun_SummaryReport(t *testing.T) {
	// Given
	filters := entity.FilterSet{"region": entity.OneOf("North", "South")}
	dateRange := &entity.DateRange{Start: "2024-01-01", End: "2024-01-31"}
	req := entity.ReportRequest{
		Transactions: sampleSales(t),
		ReportType:   entity.ReportSummary,
		OutputFormat: entity.FormatJSON,
		DateRange:    dateRange,
		Filters:      filters,
		GroupBy:      "region",
	}

	// When
	result, err := Run(req, testOptions()...)

	// Then
	require.NoError(t, err)
	require.False(t, result.Empty)
	payload := result.Payload
	require.NotNil(t, payload)

	assert.Equal(t, fixedID, payload.ID)
	assert.Equal(t, fixedNow, payload.GeneratedAt)
	assert.Equal(t, entity.ReportSummary, payload.ReportType)
	assert.Same(t, dateRange, payload.DateRange)
	assert.Equal(t, filters, payload.FiltersApplied)

	assertDecimal(t, "150", payload.Summary.TotalSales)
	assert.Equal(t, 2, payload.Summary.TransactionCount)
	assertDecimal(t, "75", payload.Summary.AverageSale)
	assertDecimal(t, "100", payload.Summary.MaxSale.Amount)
	assert.Equal(t, "2024-01-05", payload.Summary.MaxSale.Date)
	assert.Equal(t, "North", payload.Summary.MaxSale.Details.Attribute("region"))
	assert.Equal(t, "2024-01-20", payload.Summary.MinSale.Date)

	require.NotNil(t, payload.Grouping)
	assert.Equal(t, []string{"North", "South"}, payload.Grouping.Keys())
	assert.Nil(t, payload.Forecast)
	assert.Nil(t, payload.Transactions)
	assert.Nil(t, payload.Charts)
}

func TestRun_DetailedReportWithCharts(t *testing.T) {
	// Given
	req := entity.ReportRequest{
		Transactions:  sampleSales(t),
		ReportType:    entity.ReportDetailed,
		OutputFormat:  entity.FormatHTML,
		GroupBy:       "region",
		IncludeCharts: true,
	}

	// When
	result, err := Run(req, testOptions()...)

	// Then
	require.NoError(t, err)
	payload := result.Payload
	require.Len(t, payload.Transactions, 4)
	assert.NotNil(t, payload.Transactions[0].Margin)
	assert.NotNil(t, payload.Transactions[1].PreTax)
	assert.Nil(t, payload.Forecast)

	assert.Equal(t, []string{entity.ChartSalesOverTime, "sales_by_region"}, payload.Charts.Names())
	assert.Equal(t, []string{"North", "South", entity.UnknownGroup}, payload.Charts["sales_by_region"].Labels)
}

func TestRun_ForecastReport(t *testing.T) {
	// Given
	req := entity.ReportRequest{
		Transactions: sampleSales(t),
		ReportType:   entity.ReportForecast,
		OutputFormat: entity.FormatPDF,
	}

	// When
	result, err := Run(req, testOptions()...)

	// Then
	require.NoError(t, err)
	f := result.Payload.Forecast
	require.NotNil(t, f)
	// January 150, February 225.
	assertDecimal(t, "50", f.AverageGrowthRate)
	assertDecimal(t, "337.5", f.ProjectedSales[0].Amount)
	assert.Nil(t, result.Payload.Grouping)
	assert.Nil(t, result.Payload.Transactions)
}

func TestRun_NoMatchesIsEmptyResult(t *testing.T) {
	// Given
	req := entity.ReportRequest{
		Transactions: sampleSales(t),
		ReportType:   entity.ReportSummary,
		OutputFormat: entity.FormatJSON,
		Filters:      entity.FilterSet{"region": entity.Equals("West")},
	}

	// When
	result, err := Run(req, testOptions()...)

	// Then
	require.NoError(t, err)
	assert.True(t, result.Empty)
	assert.Nil(t, result.Payload)
}

func TestRun_ReversedRangeFails(t *testing.T) {
	// Given
	req := entity.ReportRequest{
		Transactions: sampleSales(t),
		ReportType:   entity.ReportSummary,
		OutputFormat: entity.FormatJSON,
		DateRange:    &entity.DateRange{Start: "2024-12-31", End: "2024-01-01"},
	}

	// When
	_, err := Run(req, testOptions()...)

	// Then
	assert.True(t, errors.Is(err, types.ErrInvalidRange))
}
