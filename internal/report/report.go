// Package report composes the classification and aggregation packages into
// the single summary consumed by the HTTP API and the report worker.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/aggregate"
	"fintrack/internal/budget"
	"fintrack/internal/core"
	"fintrack/internal/insights"
	"fintrack/internal/networth"
)

type Input struct {
	Transactions []core.Transaction
	Accounts     []core.FinancialAccount
	Budgets      []core.Budget
	Goals        []core.SavingGoal
	Currency     core.Currency
}

type Summary struct {
	Income     core.Money           `json:"income"`
	Expenses   core.Money           `json:"expenses"`
	Balance    core.Money           `json:"balance"`
	Categories *core.CategoryTotals `json:"categories"`
}

type Insights struct {
	TopCategory       *core.CategoryAmount `json:"topCategory,omitempty"`
	DailyAverage      decimal.Decimal      `json:"dailyAverage"`
	HighDailySpend    bool                 `json:"highDailySpend"`
	UnusualSpending   []core.Transaction   `json:"unusualSpending"`
	TransactionsCount int                  `json:"transactionsCount"`
}

type Report struct {
	GeneratedAt time.Time         `json:"generatedAt"`
	Currency    core.Currency     `json:"currency"`
	Summary     Summary           `json:"summary"`
	Insights    Insights          `json:"insights"`
	NetWorth    networth.Summary  `json:"netWorth"`
	Budgets     []budget.Signal   `json:"budgets"`
	Goals       []budget.Progress `json:"goals"`
}

func BuildSummary(txs []core.Transaction) Summary {
	income, expenses := aggregate.TotalIncome(txs), aggregate.TotalExpenses(txs)
	return Summary{
		Income:     income,
		Expenses:   expenses,
		Balance:    income.Sub(expenses),
		Categories: aggregate.ExpensesByCategory(txs),
	}
}

func BuildInsights(txs []core.Transaction) Insights {
	avg := insights.DailyAverageSpend(txs)
	out := Insights{
		DailyAverage:      avg,
		HighDailySpend:    insights.HighDailySpend(avg),
		UnusualSpending:   insights.UnusualSpending(txs),
		TransactionsCount: len(txs),
	}
	if top, ok := insights.TopExpenseCategory(txs); ok {
		out.TopCategory = &top
	}
	return out
}

// Build computes every section of the report. now stamps GeneratedAt.
func Build(in Input, now time.Time) (Report, error) {
	signals, err := budget.Evaluate(in.Budgets)
	if err != nil {
		return Report{}, err
	}
	return Report{
		GeneratedAt: now,
		Currency:    in.Currency.Or(core.DefaultCurrency),
		Summary:     BuildSummary(in.Transactions),
		Insights:    BuildInsights(in.Transactions),
		NetWorth:    networth.Summarize(in.Accounts),
		Budgets:     signals,
		Goals:       budget.GoalsProgress(in.Goals),
	}, nil
}

// WithLiveSpent returns in with every budget's Spent recomputed from the
// transactions in the same input, so stored spent values never go stale.
func WithLiveSpent(in Input) Input {
	in.Budgets = budget.SpentByCategory(in.Budgets, in.Transactions)
	return in
}
