package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmptyResultMessage is returned when no transaction survives filtering.
const EmptyResultMessage = "No data matches the specified criteria"

// UnknownGroup is the group key for transactions missing the grouping field.
const UnknownGroup = "Unknown"

// Valores monetários do payload saem como números JSON em qualquer ponto de entrada.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Metrics holds the aggregate statistics of a transaction set.
type Metrics struct {
	Total   decimal.Decimal
	Count   int
	Average decimal.Decimal
	Max     Transaction
	Min     Transaction
}

// SaleExtreme exposes the max or min sale of a report.
type SaleExtreme struct {
	Amount  decimal.Decimal `json:"amount"`
	Date    string          `json:"date"`
	Details Transaction     `json:"details"`
}

// Summary is the metrics section of a report.
type Summary struct {
	TotalSales       decimal.Decimal `json:"total_sales"`
	TransactionCount int             `json:"transaction_count"`
	AverageSale      decimal.Decimal `json:"average_sale"`
	MaxSale          SaleExtreme     `json:"max_sale"`
	MinSale          SaleExtreme     `json:"min_sale"`
}

// ReportPayload is the structured report handed to the output dispatcher.
type ReportPayload struct {
	ID             uuid.UUID             `json:"report_id"`
	ReportType     ReportType            `json:"report_type"`
	GeneratedAt    time.Time             `json:"generated_at"`
	DateRange      *DateRange            `json:"date_range"`
	FiltersApplied FilterSet             `json:"filters_applied"`
	Summary        Summary               `json:"summary"`
	Grouping       *Grouping             `json:"grouping,omitempty"`
	Transactions   []DetailedTransaction `json:"transactions,omitempty"`
	Forecast       *Forecast             `json:"forecast,omitempty"`
	Charts         Charts                `json:"charts,omitempty"`
}

// EmptyResult is the structured payload for a report with no matching data.
type EmptyResult struct {
	Message string        `json:"message"`
	Data    []interface{} `json:"data"`
}

// NewEmptyResult returns the standard empty-result payload.
func NewEmptyResult() *EmptyResult {
	return &EmptyResult{Message: EmptyResultMessage, Data: []interface{}{}}
}
