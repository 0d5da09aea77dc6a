package pipeline

import (
	"github.com/shopspring/decimal"

	"github.com/diillson/sales-report-go/internal/domain/entity"
	"github.com/diillson/sales-report-go/internal/shared/types"
)

// ComputeMetrics returns total, count, average and the extreme sales of a non-empty set.
// Ties on max/min resolve to the first transaction in input order.
func ComputeMetrics(txs []entity.Transaction) (entity.Metrics, error) {
	if len(txs) == 0 {
		return entity.Metrics{}, types.ErrNoData
	}

	total := decimal.Zero
	maxSale, minSale := txs[0], txs[0]
	for _, t := range txs {
		total = total.Add(t.Amount)
		if t.Amount.GreaterThan(maxSale.Amount) {
			maxSale = t
		}
		if t.Amount.LessThan(minSale.Amount) {
			minSale = t
		}
	}

	count := len(txs)
	return entity.Metrics{
		Total:   total,
		Count:   count,
		Average: total.Div(decimal.NewFromInt(int64(count))),
		Max:     maxSale,
		Min:     minSale,
	}, nil
}
