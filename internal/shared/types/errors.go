package types

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation        = errors.New("invalid report parameters")
	ErrInvalidRange      = errors.New("start date cannot be after end date")
	ErrNoData            = errors.New("no transactions to aggregate")
	ErrStageOrder        = errors.New("report pipeline stage called out of order")
	ErrUnsupportedSource = errors.New("unsupported transaction source format")
)

// ValidationError lists every rejected request parameter, keyed by parameter name.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError for a single parameter.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// InvalidRangeError is returned when a date range starts after it ends.
type InvalidRangeError struct {
	Start string
	End   string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("%s (start %s, end %s)", ErrInvalidRange, e.Start, e.End)
}

func (e *InvalidRangeError) Unwrap() error { return ErrInvalidRange }
