package pipeline

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/diillson/sales-report-go/internal/domain/entity"
)

// BuildCharts derives the sales_over_time series (daily totals, oldest first) and, when the
// grouping has groups, the sales_by_<field> category series.
func BuildCharts(txs []entity.Transaction, grouping *entity.Grouping) entity.Charts {
	charts := entity.Charts{}

	byDate := make(map[string]decimal.Decimal)
	for _, t := range txs {
		day := t.DateString()
		byDate[day] = byDate[day].Add(t.Amount)
	}
	days := make([]string, 0, len(byDate))
	for day := range byDate {
		days = append(days, day)
	}
	sort.Strings(days)

	overTime := entity.ChartSeries{Labels: []string{}, Data: []decimal.Decimal{}}
	for _, day := range days {
		overTime.Append(day, byDate[day])
	}
	charts[entity.ChartSalesOverTime] = overTime

	if grouping != nil && grouping.Len() > 0 {
		var byGroup entity.ChartSeries
		for _, key := range grouping.Keys() {
			byGroup.Append(key, grouping.Groups[key].Total)
		}
		charts[entity.ChartSalesBy(grouping.By)] = byGroup
	}
	return charts
}
