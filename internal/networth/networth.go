// Package networth reduces financial accounts to asset, liability and
// net-worth totals. Stored balances are magnitudes; IsAsset alone decides the
// direction an account contributes.
package networth

import "fintrack/internal/core"

// Summary is the account overview shown next to the account list.
type Summary struct {
	Assets          core.Money `json:"assets"`
	Liabilities     core.Money `json:"liabilities"`
	NetWorth        core.Money `json:"netWorth"`
	CashTotal       core.Money `json:"cashTotal"`       // Checking + Savings
	InvestmentTotal core.Money `json:"investmentTotal"` // Investment + Retirement
	DebtTotal       core.Money `json:"debtTotal"`       // |Credit Card + Loan + Mortgage|
}

// TotalAssets sums the balances of asset accounts.
func TotalAssets(accounts []core.FinancialAccount) core.Money {
	var sum core.Money
	for _, a := range accounts {
		if a.IsAsset {
			sum = sum.Add(a.Balance)
		}
	}
	return sum
}

// TotalLiabilities sums the balances of liability accounts as a magnitude.
func TotalLiabilities(accounts []core.FinancialAccount) core.Money {
	var sum core.Money
	for _, a := range accounts {
		if !a.IsAsset {
			sum = sum.Add(a.Balance)
		}
	}
	return sum
}

// NetWorth is TotalAssets minus TotalLiabilities and may be negative.
func NetWorth(accounts []core.FinancialAccount) core.Money {
	return TotalAssets(accounts).Sub(TotalLiabilities(accounts))
}

// TotalByType sums the accounts of type t, assets positive and liabilities
// negative.
func TotalByType(accounts []core.FinancialAccount, t core.AccountType) core.Money {
	var sum core.Money
	for _, a := range accounts {
		if a.Type != t {
			continue
		}
		if a.IsAsset {
			sum = sum.Add(a.Balance)
		} else {
			sum = sum.Sub(a.Balance)
		}
	}
	return sum
}

func totalByTypes(accounts []core.FinancialAccount, types ...core.AccountType) core.Money {
	var sum core.Money
	for _, t := range types {
		sum = sum.Add(TotalByType(accounts, t))
	}
	return sum
}

// Summarize builds the account overview: totals plus cash, investment and debt groups.
func Summarize(accounts []core.FinancialAccount) Summary {
	assets, liabilities := TotalAssets(accounts), TotalLiabilities(accounts)
	return Summary{
		Assets:          assets,
		Liabilities:     liabilities,
		NetWorth:        assets.Sub(liabilities),
		CashTotal:       totalByTypes(accounts, core.Checking, core.Savings),
		InvestmentTotal: totalByTypes(accounts, core.Investment, core.Retirement),
		DebtTotal:       totalByTypes(accounts, core.CreditCardAccount, core.Loan, core.Mortgage).Abs(),
	}
}
