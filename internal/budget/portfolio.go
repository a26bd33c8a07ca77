package budget

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/finmate/internal/model"
)

// Portfolio totals purchase and current values across investments.
func Portfolio(investments []model.Investment) model.PortfolioMetrics {
	invested := decimal.Zero
	current := decimal.Zero
	for _, inv := range investments {
		invested = invested.Add(decimal.NewFromFloat(inv.PurchaseAmount))
		current = current.Add(decimal.NewFromFloat(inv.CurrentValue))
	}

	gain := current.Sub(invested)
	var percent float64
	if invested.IsPositive() {
		percent = gain.Div(invested).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}

	return model.PortfolioMetrics{
		TotalInvested: invested.InexactFloat64(),
		CurrentValue:  current.InexactFloat64(),
		Gain:          gain.InexactFloat64(),
		GainPercent:   percent,
	}
}

// FixedExpensesTotal sums fixed expense amounts, ignoring negative entries.
func FixedExpensesTotal(expenses []model.FixedExpense) float64 {
	total := decimal.Zero
	for _, e := range expenses {
		if e.Amount > 0 {
			total = total.Add(decimal.NewFromFloat(e.Amount))
		}
	}
	return total.InexactFloat64()
}
