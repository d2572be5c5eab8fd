// Package ledger defines the storage ports for transactions, accounts,
// budgets and saving goals.
package ledger

import (
	"context"
	"errors"
	"time"

	"fintrack/internal/core"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// Snapshot is a consistent copy of the whole ledger at one revision.
type Snapshot struct {
	Transactions []core.Transaction      `json:"transactions"`
	Accounts     []core.FinancialAccount `json:"accounts"`
	Budgets      []core.Budget           `json:"budgets"`
	Goals        []core.SavingGoal       `json:"goals"`
	Revision     uint64                  `json:"revision"`
	TakenAt      time.Time               `json:"takenAt"`
}

// Ports for the ledger.
type (
	TransactionStore interface {
		// ListTransactions returns every transaction, newest date first.
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
		GetTransaction(ctx context.Context, id string) (core.Transaction, error)
		// AddTransaction stores tx, assigning an ID when it has none.
		AddTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error)
		// UpdateTransaction replaces the transaction with the same ID.
		UpdateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error)
		DeleteTransaction(ctx context.Context, id string) error
		// ImportTransactions stores all of txs or none of them.
		ImportTransactions(ctx context.Context, txs []core.Transaction) ([]core.Transaction, error)
	}

	AccountStore interface {
		ListAccounts(ctx context.Context) ([]core.FinancialAccount, error)
		GetAccount(ctx context.Context, id string) (core.FinancialAccount, error)
		AddAccount(ctx context.Context, a core.FinancialAccount) (core.FinancialAccount, error)
		UpdateAccount(ctx context.Context, a core.FinancialAccount) (core.FinancialAccount, error)
		DeleteAccount(ctx context.Context, id string) error
	}

	BudgetStore interface {
		ListBudgets(ctx context.Context) ([]core.Budget, error)
		// PutBudget inserts or replaces the budget for b's user and category.
		PutBudget(ctx context.Context, b core.Budget) (core.Budget, error)
	}

	GoalStore interface {
		ListGoals(ctx context.Context) ([]core.SavingGoal, error)
	}

	Snapshotter interface {
		Snapshot(ctx context.Context) (Snapshot, error)
		// Revision increases on every successful mutation.
		Revision() uint64
	}

	// Ledger is everything the service layer needs from storage.
	Ledger interface {
		TransactionStore
		AccountStore
		BudgetStore
		GoalStore
		Snapshotter
	}
)
