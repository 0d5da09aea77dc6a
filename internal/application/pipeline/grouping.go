package pipeline

import (
	"github.com/shopspring/decimal"

	"github.com/diillson/sales-report-go/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// GroupBy partitions the transactions by the value of field key. Transactions without the
// field land in the "Unknown" group. Percentages are taken against grandTotal, the total of
// the same set; a zero grand total yields 0%. An empty key skips grouping and returns nil.
func GroupBy(txs []entity.Transaction, key string, grandTotal decimal.Decimal) *entity.Grouping {
	if key == "" {
		return nil
	}

	// Equal values share a group labelled with the first spelling seen (2.5 and 2.50).
	grouping := entity.NewGrouping(key)
	labels := make(map[string]string)
	for _, t := range txs {
		value, ok := t.Field(key)
		if !ok {
			value = entity.Text(entity.UnknownGroup)
		}
		label, seen := labels[value.Key()]
		if !seen {
			label = value.String()
			labels[value.Key()] = label
		}
		grouping.Add(label, t)
	}

	for _, k := range grouping.Keys() {
		entry := grouping.Groups[k]
		entry.Average = entry.Total.Div(decimal.NewFromInt(int64(entry.Count)))
		if grandTotal.IsZero() {
			entry.Percentage = decimal.Zero
			continue
		}
		entry.Percentage = entry.Total.Mul(hundred).Div(grandTotal)
	}
	return grouping
}
