package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ReportType selects the type-specific enrichment of a report.
type ReportType string

const (
	ReportSummary  ReportType = "summary"
	ReportDetailed ReportType = "detailed"
	ReportForecast ReportType = "forecast"
)

// OutputFormat selects the renderer a report is dispatched to.
type OutputFormat string

const (
	FormatPDF   OutputFormat = "pdf"
	FormatExcel OutputFormat = "excel"
	FormatHTML  OutputFormat = "html"
	FormatJSON  OutputFormat = "json"
)

// Extension returns the artifact file extension for the format.
func (f OutputFormat) Extension() string {
	if f == FormatExcel {
		return "xlsx"
	}
	return string(f)
}

// DateRange is an inclusive calendar date range, kept as the caller supplied it.
type DateRange struct {
	Start string `json:"start" yaml:"start" toml:"start" validate:"required,datetime=2006-01-02"`
	End   string `json:"end" yaml:"end" toml:"end" validate:"required,datetime=2006-01-02"`
}

// FilterValue is either a single expected value or a set of acceptable values.
type FilterValue struct {
	Values []string
	Multi  bool
}

// Equals builds a scalar filter value.
func Equals(v string) FilterValue {
	return FilterValue{Values: []string{v}}
}

// OneOf builds a membership filter value.
func OneOf(v ...string) FilterValue {
	return FilterValue{Values: v, Multi: true}
}

// MarshalJSON writes a scalar as a string and a set as an array.
func (f FilterValue) MarshalJSON() ([]byte, error) {
	if f.Multi {
		if f.Values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(f.Values)
	}
	if len(f.Values) == 0 {
		return []byte(`""`), nil
	}
	return json.Marshal(f.Values[0])
}

// UnmarshalJSON accepts a scalar (string, number or bool) or an array of scalars.
func (f *FilterValue) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseFilterValue(raw)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ParseFilterValue converts a decoded config value into a FilterValue.
func ParseFilterValue(raw interface{}) (FilterValue, error) {
	switch v := raw.(type) {
	case nil:
		return FilterValue{}, fmt.Errorf("filter value cannot be null")
	case []interface{}:
		values := make([]string, 0, len(v))
		for _, item := range v {
			switch item.(type) {
			case []interface{}, map[string]interface{}:
				return FilterValue{}, fmt.Errorf("filter set members must be scalars")
			}
			values = append(values, fmt.Sprint(item))
		}
		return OneOf(values...), nil
	case []string:
		return OneOf(v...), nil
	case map[string]interface{}:
		return FilterValue{}, fmt.Errorf("filter value must be a scalar or a list")
	default:
		return Equals(fmt.Sprint(v)), nil
	}
}

// FilterSet maps a field name to the value(s) it must match. Entries are ANDed.
type FilterSet map[string]FilterValue

// ParseFilterSet converts a decoded "filters" table. Lists become membership filters,
// scalars become equality filters.
func ParseFilterSet(raw map[string]interface{}) (FilterSet, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	filters := make(FilterSet, len(raw))
	for field, v := range raw {
		value, err := ParseFilterValue(v)
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", field, err)
		}
		filters[field] = value
	}
	return filters, nil
}

// Fields returns the filtered field names in lexical order.
func (fs FilterSet) Fields() []string {
	names := make([]string, 0, len(fs))
	for k := range fs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// String renders the filters as field=value|value pairs, for display.
func (fs FilterSet) String() string {
	parts := make([]string, 0, len(fs))
	for _, name := range fs.Fields() {
		parts = append(parts, name+"="+strings.Join(fs[name].Values, "|"))
	}
	return strings.Join(parts, ", ")
}

// ReportRequest carries everything needed to generate one report.
type ReportRequest struct {
	Transactions  []Transaction `validate:"min=1"`
	ReportType    ReportType    `validate:"required,oneof=summary detailed forecast"`
	OutputFormat  OutputFormat  `validate:"required,oneof=pdf excel html json"`
	DateRange     *DateRange    `validate:"omitempty"`
	Filters       FilterSet
	GroupBy       string
	IncludeCharts bool
}
