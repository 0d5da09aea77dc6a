package pipeline

import (
	"time"

	"github.com/diillson/sales-report-go/internal/domain/entity"
	"github.com/diillson/sales-report-go/internal/shared/types"
)

// FilterByDateRange keeps transactions dated within the range, both ends inclusive.
// A nil range keeps everything. The result never shares its backing array with txs.
func FilterByDateRange(txs []entity.Transaction, dateRange *entity.DateRange) ([]entity.Transaction, error) {
	if dateRange == nil {
		return append(make([]entity.Transaction, 0, len(txs)), txs...), nil
	}

	start, err := time.Parse(entity.DateLayout, dateRange.Start)
	if err != nil {
		return nil, types.NewValidationError("date_range.start", "Date must use the YYYY-MM-DD format")
	}
	end, err := time.Parse(entity.DateLayout, dateRange.End)
	if err != nil {
		return nil, types.NewValidationError("date_range.end", "Date must use the YYYY-MM-DD format")
	}
	if start.After(end) {
		return nil, &types.InvalidRangeError{Start: dateRange.Start, End: dateRange.End}
	}

	filtered := make([]entity.Transaction, 0, len(txs))
	for _, t := range txs {
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered, nil
}

// ApplyFilters narrows the set field by field. A transaction survives only if it matches
// every filter; a missing field never matches.
func ApplyFilters(txs []entity.Transaction, filters entity.FilterSet) []entity.Transaction {
	if len(filters) == 0 {
		return txs
	}

	filtered := txs
	for _, field := range filters.Fields() {
		want := filters[field]
		next := make([]entity.Transaction, 0, len(filtered))
		for _, t := range filtered {
			if matches(t, field, want) {
				next = append(next, t)
			}
		}
		filtered = next
	}
	return filtered
}

// Filter applies the date range and then the field filters.
func Filter(txs []entity.Transaction, dateRange *entity.DateRange, filters entity.FilterSet) ([]entity.Transaction, error) {
	filtered, err := FilterByDateRange(txs, dateRange)
	if err != nil {
		return nil, err
	}
	return ApplyFilters(filtered, filters), nil
}

// matches compares by value: numeric fields match an operand with the same decimal value.
func matches(t entity.Transaction, field string, want entity.FilterValue) bool {
	got, ok := t.Field(field)
	if !ok {
		return false
	}
	for _, v := range want.Values {
		if got.Matches(v) {
			return true
		}
	}
	return false
}
