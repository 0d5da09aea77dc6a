package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Month is a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the calendar month of t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Next returns the following calendar month, rolling over the year after December.
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

// Before reports whether m is chronologically before o.
func (m Month) Before(o Month) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}
	return m.Month < o.Month
}

// String formats the month as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// MonthAmount is one entry of a monthly series.
type MonthAmount struct {
	Month  Month
	Amount decimal.Decimal
}

// MonthlySeries is a chronologically ordered month -> amount mapping.
// It serialises as a JSON object whose keys keep that order.
type MonthlySeries []MonthAmount

// Get returns the amount recorded for m.
func (s MonthlySeries) Get(m Month) (decimal.Decimal, bool) {
	for _, e := range s {
		if e.Month == m {
			return e.Amount, true
		}
	}
	return decimal.Zero, false
}

// MarshalJSON writes {"YYYY-MM": amount, ...} in series order.
func (s MonthlySeries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Month.String())
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Amount)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Forecast is the trend section of a forecast report.
type Forecast struct {
	MonthlySales      MonthlySeries   `json:"monthly_sales"`
	GrowthRates       MonthlySeries   `json:"growth_rates"`
	AverageGrowthRate decimal.Decimal `json:"average_growth_rate"`
	ProjectedSales    MonthlySeries   `json:"projected_sales"`
}
