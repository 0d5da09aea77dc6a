package pipeline

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/diillson/sales-report-go/internal/domain/entity"
	"github.com/diillson/sales-report-go/internal/shared/types"
)

var validate = validator.New()

// Parameter names and messages reported by ValidationError, keyed by struct namespace.
var validationParams = map[string]struct {
	name    string
	message string
}{
	"ReportRequest.Transactions":    {"sales_data", "Sales data must be a non-empty list"},
	"ReportRequest.ReportType":      {"report_type", "Report type must be 'summary', 'detailed', or 'forecast'"},
	"ReportRequest.OutputFormat":    {"output_format", "Output format must be 'pdf', 'excel', 'html', or 'json'"},
	"ReportRequest.DateRange.Start": {"date_range.start", "Date range must include 'start' and 'end' dates"},
	"ReportRequest.DateRange.End":   {"date_range.end", "Date range must include 'start' and 'end' dates"},
}

// Validate rejects a malformed request before any transaction is touched.
func Validate(req entity.ReportRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &types.ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		param, ok := validationParams[fe.StructNamespace()]
		if !ok {
			verr.Fields[fe.Field()] = fe.Error()
			continue
		}
		message := param.message
		if fe.Tag() == "datetime" {
			message = "Date must use the YYYY-MM-DD format"
		}
		verr.Fields[param.name] = message
	}
	return verr
}
