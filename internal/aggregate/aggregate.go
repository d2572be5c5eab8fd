// Package aggregate reduces transaction collections to income, expense and
// per-category totals. Every function is a single pass over its input and
// never modifies it.
package aggregate

import "fintrack/internal/core"

// TotalIncome sums the amounts of all transactions above zero.
func TotalIncome(txs []core.Transaction) core.Money {
	var sum core.Money
	for _, tx := range txs {
		if tx.IsIncome() {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum
}

// TotalExpenses returns the magnitude of the sum of all negative amounts.
// Zero-amount transactions count towards neither total.
func TotalExpenses(txs []core.Transaction) core.Money {
	var sum core.Money
	for _, tx := range txs {
		if tx.IsExpense() {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum.Abs()
}

// Balance is TotalIncome minus TotalExpenses, which equals the plain sum of
// all amounts.
func Balance(txs []core.Transaction) core.Money {
	return TotalIncome(txs).Sub(TotalExpenses(txs))
}

// ExpensesByCategory accumulates the absolute amount of each expense under
// its category. Categories without expenses are absent from the result.
func ExpensesByCategory(txs []core.Transaction) *core.CategoryTotals {
	totals := core.NewCategoryTotals()
	for _, tx := range txs {
		if tx.IsExpense() {
			totals.Add(tx.Category, tx.Amount.Abs())
		}
	}
	return totals
}
