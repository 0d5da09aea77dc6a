package pipeline

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/diillson/sales-report-go/internal/domain/entity"
)

// ProjectionMonths is the number of months projected past the last observed month.
const ProjectionMonths = 3

// ComputeForecast buckets sales by calendar month, derives month-over-month growth rates and
// projects the following months by compounding the average rate.
//
// A pair whose previous month totals zero or less yields no rate at all: it is left out of
// growth_rates and of the average rather than counted as 0%.
func ComputeForecast(txs []entity.Transaction) *entity.Forecast {
	forecast := &entity.Forecast{
		MonthlySales:      entity.MonthlySeries{},
		GrowthRates:       entity.MonthlySeries{},
		AverageGrowthRate: decimal.Zero,
		ProjectedSales:    entity.MonthlySeries{},
	}

	forecast.MonthlySales = monthlySales(txs)
	if len(forecast.MonthlySales) == 0 {
		return forecast
	}

	sum := decimal.Zero
	for i := 1; i < len(forecast.MonthlySales); i++ {
		prev := forecast.MonthlySales[i-1].Amount
		curr := forecast.MonthlySales[i]
		if !prev.IsPositive() {
			continue
		}
		rate := curr.Amount.Sub(prev).Mul(hundred).Div(prev)
		forecast.GrowthRates = append(forecast.GrowthRates, entity.MonthAmount{Month: curr.Month, Amount: rate})
		sum = sum.Add(rate)
	}
	if n := len(forecast.GrowthRates); n > 0 {
		forecast.AverageGrowthRate = sum.Div(decimal.NewFromInt(int64(n)))
	}

	factor := decimal.NewFromInt(1).Add(forecast.AverageGrowthRate.Div(hundred))
	last := forecast.MonthlySales[len(forecast.MonthlySales)-1]
	month, amount := last.Month, last.Amount
	for i := 0; i < ProjectionMonths; i++ {
		month = month.Next()
		amount = amount.Mul(factor)
		forecast.ProjectedSales = append(forecast.ProjectedSales, entity.MonthAmount{Month: month, Amount: amount})
	}
	return forecast
}

func monthlySales(txs []entity.Transaction) entity.MonthlySeries {
	totals := make(map[entity.Month]decimal.Decimal)
	for _, t := range txs {
		m := entity.MonthOf(t.Date)
		totals[m] = totals[m].Add(t.Amount)
	}

	series := make(entity.MonthlySeries, 0, len(totals))
	for m, total := range totals {
		series = append(series, entity.MonthAmount{Month: m, Amount: total})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Month.Before(series[j].Month)
	})
	return series
}
