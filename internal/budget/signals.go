package budget

import (
	"errors"

	"github.com/shopspring/decimal"

	"fintrack/internal/aggregate"
	"fintrack/internal/core"
)

// Signal is the evaluated state of one budget.
type Signal struct {
	Category    core.Category   `json:"category"`
	Limit       core.Money      `json:"limit"`
	Spent       core.Money      `json:"spent"`
	Remaining   core.Money      `json:"remaining"` // negative when over budget
	Percentage  decimal.Decimal `json:"percentage"`
	FillPercent decimal.Decimal `json:"fillPercent"`
	Tier        Tier            `json:"tier"`
	Color       string          `json:"color"`
	OverBudget  bool            `json:"overBudget"`
	// Undefined marks a zero-limit budget; such budgets are always Normal.
	Undefined bool `json:"undefined,omitempty"`
}

// Evaluate returns one signal per budget, in input order. Zero-limit budgets
// are reported as Normal with Undefined set instead of failing the batch.
func Evaluate(budgets []core.Budget) ([]Signal, error) {
	out := make([]Signal, 0, len(budgets))
	for _, b := range budgets {
		s := Signal{
			Category:   b.Category,
			Limit:      b.Limit,
			Spent:      b.Spent,
			Remaining:  b.Limit.Sub(b.Spent),
			OverBudget: b.Spent.Cents > b.Limit.Cents,
		}
		tier, err := SeverityTier(b.Spent, b.Limit)
		switch {
		case errors.Is(err, ErrDivisionUndefined):
			s.Undefined = true
		case err != nil:
			return nil, err
		default:
			s.Percentage, _ = Percentage(b.Spent, b.Limit)
			s.FillPercent, _ = FillPercent(b.Spent, b.Limit)
		}
		s.Tier = tier
		s.Color = tier.Color()
		out = append(out, s)
	}
	return out, nil
}

// SpentByCategory returns copies of budgets whose Spent is the category's
// expense total in txs. Categories without expenses get zero.
func SpentByCategory(budgets []core.Budget, txs []core.Transaction) []core.Budget {
	totals := aggregate.ExpensesByCategory(txs)
	out := make([]core.Budget, len(budgets))
	for i, b := range budgets {
		spent, _ := totals.Get(b.Category)
		b.Spent = spent
		out[i] = b
	}
	return out
}
