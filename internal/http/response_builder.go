package http

import (
	"fintrack/internal/budget"
	"fintrack/internal/cache"
	"fintrack/internal/core"
)

type transactionsResponse struct {
	Transactions []core.Transaction `json:"transactions"`
	Count        int                `json:"count"`
}

type importResponse struct {
	Imported []core.Transaction `json:"imported"`
	Count    int                `json:"count"`
}

type accountsResponse struct {
	Accounts []core.FinancialAccount `json:"accounts"`
	Count    int                     `json:"count"`
}

type budgetsResponse struct {
	Budgets []core.Budget `json:"budgets"`
}

type signalsResponse struct {
	Signals []budget.Signal `json:"signals"`
}

type goalsResponse struct {
	Goals    []core.SavingGoal `json:"goals"`
	Progress []budget.Progress `json:"progress"`
}

type classifyResponse struct {
	Category core.Category `json:"category"`
}

type readyResponse struct {
	Status      string           `json:"status"`
	Revision    uint64           `json:"revision"`
	Currency    core.Currency    `json:"currency"`
	ReportCache cache.Stats      `json:"reportCache"`
	Security    map[string]int64 `json:"security"`
}
