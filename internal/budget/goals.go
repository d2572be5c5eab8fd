package budget

import (
	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// Progress describes how far a saving goal has come.
type Progress struct {
	GoalID     string          `json:"goalId"`
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
	Remaining  core.Money      `json:"remaining"`
	Complete   bool            `json:"complete"`
}

// GoalProgress computes current/target*100 and the amount still missing.
// Remaining is negative once the goal is exceeded.
func GoalProgress(g core.SavingGoal) (Progress, error) {
	p, err := Percentage(g.CurrentAmount, g.TargetAmount)
	if err != nil {
		return Progress{}, err
	}
	return Progress{
		GoalID:     g.ID,
		Name:       g.Name,
		Percentage: p,
		Remaining:  g.TargetAmount.Sub(g.CurrentAmount),
		Complete:   g.CurrentAmount.Cents >= g.TargetAmount.Cents,
	}, nil
}

// GoalsProgress skips goals with a zero target.
func GoalsProgress(goals []core.SavingGoal) []Progress {
	out := make([]Progress, 0, len(goals))
	for _, g := range goals {
		p, err := GoalProgress(g)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}
