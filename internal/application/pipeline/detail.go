package pipeline

import (
	"github.com/diillson/sales-report-go/internal/domain/entity"
)

// EnrichTransactions attaches pre_tax, profit and margin to each transaction where the
// record carries the fields they need. Margin is left out for a zero amount.
func EnrichTransactions(txs []entity.Transaction) []entity.DetailedTransaction {
	detailed := make([]entity.DetailedTransaction, 0, len(txs))
	for _, t := range txs {
		d := entity.DetailedTransaction{Transaction: t}

		if t.Tax != nil {
			preTax := t.Amount.Sub(*t.Tax)
			d.PreTax = &preTax
		}

		if t.Cost != nil {
			profit := t.Amount.Sub(*t.Cost)
			d.Profit = &profit
			if !t.Amount.IsZero() {
				margin := profit.Mul(hundred).Div(t.Amount)
				d.Margin = &margin
			}
		}

		detailed = append(detailed, d)
	}
	return detailed
}
