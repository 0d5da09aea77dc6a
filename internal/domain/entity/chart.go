package entity

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Chart series names.
const (
	ChartSalesOverTime = "sales_over_time"
	chartSalesByPrefix = "sales_by_"
)

// ChartSalesBy returns the series name of the category chart for a grouping field.
func ChartSalesBy(field string) string {
	return chartSalesByPrefix + field
}

// ChartSeries is a labelled data series; Labels and Data have the same length.
type ChartSeries struct {
	Labels []string          `json:"labels"`
	Data   []decimal.Decimal `json:"data"`
}

// Append adds one labelled point.
func (c *ChartSeries) Append(label string, value decimal.Decimal) {
	c.Labels = append(c.Labels, label)
	c.Data = append(c.Data, value)
}

// Len returns the number of points.
func (c ChartSeries) Len() int {
	return len(c.Labels)
}

// Floats returns the data as float64 values, for drawing.
func (c ChartSeries) Floats() []float64 {
	out := make([]float64, len(c.Data))
	for i, d := range c.Data {
		out[i] = d.InexactFloat64()
	}
	return out
}

// Charts maps a series name to its data.
type Charts map[string]ChartSeries

// Names returns the series names with sales_over_time first, then the rest sorted.
func (c Charts) Names() []string {
	names := make([]string, 0, len(c))
	for k := range c {
		if k != ChartSalesOverTime {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	if _, ok := c[ChartSalesOverTime]; ok {
		names = append([]string{ChartSalesOverTime}, names...)
	}
	return names
}
