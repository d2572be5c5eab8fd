// Package insights derives descriptive statistics from a transaction
// collection: the top spending category, the average spend per day and
// unusually large expenses.
package insights

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/aggregate"
	"fintrack/internal/core"
)

const (
	// MaxUnusual caps the number of transactions UnusualSpending returns.
	MaxUnusual = 3
	// minUnusualSample is the smallest collection UnusualSpending inspects.
	minUnusualSample = 3
	unusualFactor    = 2
)

// HighDailySpendThreshold is the daily average, in major units, above which
// the dashboard suggests reducing daily expenses.
var HighDailySpendThreshold = decimal.NewFromInt(50)

// TopExpenseCategory returns the category with the largest expense total.
// On an exact tie the category accumulated first wins. The boolean is false
// when there are no expenses.
func TopExpenseCategory(txs []core.Transaction) (core.CategoryAmount, bool) {
	entries := aggregate.ExpensesByCategory(txs).Entries()
	if len(entries) == 0 {
		return core.CategoryAmount{}, false
	}
	top := entries[0]
	for _, e := range entries[1:] {
		if e.Amount.Cents > top.Amount.Cents {
			top = e
		}
	}
	return top, true
}

// DaySpan returns ceil((latest - earliest) / 24h) over all transaction
// dates, never less than 1. It returns 0 for an empty collection.
func DaySpan(txs []core.Transaction) int64 {
	if len(txs) == 0 {
		return 0
	}
	earliest, latest := txs[0].Date, txs[0].Date
	for _, tx := range txs[1:] {
		if tx.Date.Before(earliest) {
			earliest = tx.Date
		}
		if tx.Date.After(latest) {
			latest = tx.Date
		}
	}
	d := latest.Sub(earliest)
	days := int64(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return max(days, 1)
}

// DailyAverageSpend divides total expenses by the day span of the whole
// collection, income dates included. Empty input yields zero.
func DailyAverageSpend(txs []core.Transaction) decimal.Decimal {
	span := DaySpan(txs)
	if span == 0 {
		return decimal.Zero
	}
	return aggregate.TotalExpenses(txs).Decimal().Div(decimal.NewFromInt(span))
}

// HighDailySpend reports whether avg is above HighDailySpendThreshold.
func HighDailySpend(avg decimal.Decimal) bool {
	return avg.GreaterThan(HighDailySpendThreshold)
}

// UnusualSpending returns up to MaxUnusual expenses whose magnitude is
// strictly greater than twice the mean expense magnitude, largest first.
// Collections with fewer than three transactions yield nothing.
func UnusualSpending(txs []core.Transaction) []core.Transaction {
	out := []core.Transaction{}
	if len(txs) < minUnusualSample {
		return out
	}
	var (
		sum   = decimal.Zero
		count int64
	)
	for _, tx := range txs {
		if tx.IsExpense() {
			sum = sum.Add(decimal.NewFromInt(tx.Amount.Abs().Cents))
			count++
		}
	}
	if count == 0 {
		return out
	}
	// |amount| > factor * sum / count, compared as |amount| * count > factor * sum.
	n := decimal.NewFromInt(count)
	threshold := sum.Mul(decimal.NewFromInt(unusualFactor))
	for _, tx := range txs {
		if tx.IsExpense() && decimal.NewFromInt(tx.Amount.Abs().Cents).Mul(n).GreaterThan(threshold) {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Abs().Cents > out[j].Amount.Abs().Cents
	})
	if len(out) > MaxUnusual {
		out = out[:MaxUnusual]
	}
	return out
}

// MeanExpense returns the mean expense magnitude in major units, or zero when
// there are no expenses.
func MeanExpense(txs []core.Transaction) decimal.Decimal {
	var (
		sum   core.Money
		count int64
	)
	for _, tx := range txs {
		if tx.IsExpense() {
			sum = sum.Add(tx.Amount.Abs())
			count++
		}
	}
	if count == 0 {
		return decimal.Zero
	}
	return sum.Decimal().Div(decimal.NewFromInt(count))
}
