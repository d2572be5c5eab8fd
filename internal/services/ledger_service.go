package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/budget"
	"fintrack/internal/classifier"
	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/networth"
	"fintrack/internal/report"
)

// SnapshotPublisher is satisfied by *amqp.Client.
type SnapshotPublisher interface {
	PublishLedgerSnapshot(ctx context.Context, msg *amqp.LedgerSnapshotMessage) error
	Close() error
}

// LedgerService orchestrates ledger writes, snapshot publishing and report
// computation. Writes go to the local ledger first; publishing is best effort.
type LedgerService struct {
	ledger     ledger.Ledger
	publisher  SnapshotPublisher
	classifier *classifier.Classifier
	currency   core.Currency
	now        func() time.Time
}

// NewLedgerService wires the service. publisher may be nil, in which case
// snapshots are not published.
func NewLedgerService(l ledger.Ledger, publisher SnapshotPublisher, currency core.Currency) *LedgerService {
	if c, ok := publisher.(*amqp.Client); ok && c == nil {
		publisher = nil
	}
	return &LedgerService{
		ledger:     l,
		publisher:  publisher,
		classifier: classifier.New(classifier.DefaultRules),
		currency:   currency.Or(core.DefaultCurrency),
		now:        time.Now,
	}
}

func (s *LedgerService) Currency() core.Currency { return s.currency }

// Revision identifies the ledger state; reports are cached per revision.
func (s *LedgerService) Revision() uint64 { return s.ledger.Revision() }

func (s *LedgerService) Classify(description string) core.Category {
	return s.classifier.Classify(description)
}

func (s *LedgerService) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return s.ledger.ListTransactions(ctx)
}

// AddTransaction stores tx, classifying it from its description when no
// category was given.
func (s *LedgerService) AddTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if tx.Category == "" {
		tx.Category = s.classifier.Classify(tx.Description)
	}
	saved, err := s.ledger.AddTransaction(ctx, tx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}
	s.publishSnapshot(ctx)
	return saved, nil
}

func (s *LedgerService) UpdateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if tx.Category == "" {
		tx.Category = s.classifier.Classify(tx.Description)
	}
	saved, err := s.ledger.UpdateTransaction(ctx, tx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	s.publishSnapshot(ctx)
	return saved, nil
}

func (s *LedgerService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.ledger.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	s.publishSnapshot(ctx)
	return nil
}

// ImportTransactions classifies rows that arrive without a category and
// stores the batch atomically.
func (s *LedgerService) ImportTransactions(ctx context.Context, txs []core.Transaction) ([]core.Transaction, error) {
	classified := s.classifier.ClassifyAll(txs)
	saved, err := s.ledger.ImportTransactions(ctx, classified)
	if err != nil {
		return nil, fmt.Errorf("import transactions: %w", err)
	}
	slog.InfoContext(ctx, "Imported transactions", "component", "ledger", "count", len(saved))
	if len(saved) > 0 {
		s.publishSnapshot(ctx)
	}
	return saved, nil
}

func (s *LedgerService) ListAccounts(ctx context.Context) ([]core.FinancialAccount, error) {
	return s.ledger.ListAccounts(ctx)
}

func (s *LedgerService) AddAccount(ctx context.Context, a core.FinancialAccount) (core.FinancialAccount, error) {
	if a.Currency == "" {
		a.Currency = s.currency
	}
	saved, err := s.ledger.AddAccount(ctx, a)
	if err != nil {
		return core.FinancialAccount{}, fmt.Errorf("add account: %w", err)
	}
	s.publishSnapshot(ctx)
	return saved, nil
}

func (s *LedgerService) UpdateAccount(ctx context.Context, a core.FinancialAccount) (core.FinancialAccount, error) {
	if a.Currency == "" {
		a.Currency = s.currency
	}
	saved, err := s.ledger.UpdateAccount(ctx, a)
	if err != nil {
		return core.FinancialAccount{}, fmt.Errorf("update account: %w", err)
	}
	s.publishSnapshot(ctx)
	return saved, nil
}

func (s *LedgerService) DeleteAccount(ctx context.Context, id string) error {
	if err := s.ledger.DeleteAccount(ctx, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	s.publishSnapshot(ctx)
	return nil
}

// ListBudgets returns budgets with Spent taken from the current transactions.
func (s *LedgerService) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	snap, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot ledger: %w", err)
	}
	return budget.SpentByCategory(snap.Budgets, snap.Transactions), nil
}

func (s *LedgerService) PutBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	saved, err := s.ledger.PutBudget(ctx, b)
	if err != nil {
		return core.Budget{}, fmt.Errorf("put budget: %w", err)
	}
	s.publishSnapshot(ctx)
	return saved, nil
}

func (s *LedgerService) ListGoals(ctx context.Context) ([]core.SavingGoal, error) {
	return s.ledger.ListGoals(ctx)
}

func (s *LedgerService) Summary(ctx context.Context) (report.Summary, error) {
	txs, err := s.ledger.ListTransactions(ctx)
	if err != nil {
		return report.Summary{}, fmt.Errorf("list transactions: %w", err)
	}
	return report.BuildSummary(txs), nil
}

func (s *LedgerService) Insights(ctx context.Context) (report.Insights, error) {
	txs, err := s.ledger.ListTransactions(ctx)
	if err != nil {
		return report.Insights{}, fmt.Errorf("list transactions: %w", err)
	}
	return report.BuildInsights(txs), nil
}

func (s *LedgerService) NetWorth(ctx context.Context) (networth.Summary, error) {
	accounts, err := s.ledger.ListAccounts(ctx)
	if err != nil {
		return networth.Summary{}, fmt.Errorf("list accounts: %w", err)
	}
	return networth.Summarize(accounts), nil
}

func (s *LedgerService) BudgetSignals(ctx context.Context) ([]budget.Signal, error) {
	budgets, err := s.ListBudgets(ctx)
	if err != nil {
		return nil, err
	}
	return budget.Evaluate(budgets)
}

// Report builds the full report from one consistent snapshot.
func (s *LedgerService) Report(ctx context.Context) (report.Report, error) {
	snap, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return report.Report{}, fmt.Errorf("snapshot ledger: %w", err)
	}
	return report.Build(report.WithLiveSpent(SnapshotInput(snap, s.currency)), s.now())
}

// SnapshotInput adapts a ledger snapshot to report input.
func SnapshotInput(snap ledger.Snapshot, currency core.Currency) report.Input {
	return report.Input{
		Transactions: snap.Transactions,
		Accounts:     snap.Accounts,
		Budgets:      snap.Budgets,
		Goals:        snap.Goals,
		Currency:     currency,
	}
}

// publishSnapshot publishes the current ledger. Failures are logged and
// never returned: the write already succeeded locally.
func (s *LedgerService) publishSnapshot(ctx context.Context) {
	if s.publisher == nil {
		slog.DebugContext(ctx, "AMQP publisher not configured, skipping ledger snapshot", "component", "ledger")
		return
	}
	snap, err := s.ledger.Snapshot(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to snapshot ledger", "component", "ledger", "error", err)
		return
	}
	msg := amqp.NewLedgerSnapshotMessage(snap, s.currency)
	if err := s.publisher.PublishLedgerSnapshot(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger snapshot",
			"component", "ledger", "revision", snap.Revision, "error", err)
	}
}

// Close releases the publisher.
func (s *LedgerService) Close() error {
	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.Close(); err != nil {
		return fmt.Errorf("close ledger service: amqp: %w", err)
	}
	return nil
}
