package memory

import (
	"context"
	"log/slog"
	"sync"

	"fintrack/internal/report"
	ports "fintrack/internal/sheets"
)

const defaultKeep = 10

var _ ports.ReportWriter = (*Store)(nil)

// Store keeps the most recent reports in memory and logs a one-line summary
// for each. It backs the worker when no spreadsheet export is configured.
type Store struct {
	mu      sync.Mutex
	keep    int
	items   []report.Report
	written int
}

func New(keep int) *Store {
	if keep < 1 {
		keep = defaultKeep
	}
	return &Store{keep: keep}
}

// WriteReport records r, dropping the oldest report once keep is exceeded.
func (s *Store) WriteReport(ctx context.Context, r report.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.items = append(s.items, r)
	if len(s.items) > s.keep {
		s.items = append([]report.Report(nil), s.items[len(s.items)-s.keep:]...)
	}
	s.written++
	s.mu.Unlock()

	slog.InfoContext(ctx, "Report generated",
		"income", r.Summary.Income.Format(r.Currency),
		"expenses", r.Summary.Expenses.Format(r.Currency),
		"balance", r.Summary.Balance.Format(r.Currency),
		"net_worth", r.NetWorth.NetWorth.Format(r.Currency),
		"transactions", r.Insights.TransactionsCount,
		"budgets", len(r.Budgets),
	)
	return nil
}

// Reports returns the retained reports, oldest first.
func (s *Store) Reports() []report.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]report.Report(nil), s.items...)
}

// Latest returns the last written report.
func (s *Store) Latest() (report.Report, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return report.Report{}, false
	}
	return s.items[len(s.items)-1], true
}

// Written counts every report ever written, including evicted ones.
func (s *Store) Written() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.written
}
