package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/report"
	"fintrack/internal/sheets"
)

// ReportWorker turns ledger snapshots into reports and hands them to a
// ReportWriter.
type ReportWorker struct {
	writer sheets.ReportWriter
	now    func() time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

func NewReportWorker(writer sheets.ReportWriter) *ReportWorker {
	return &ReportWorker{writer: writer, now: time.Now}
}

// HandleSnapshotMessage builds and writes the report for one snapshot.
// Snapshots older than the last one written are skipped, so a redelivered
// or reordered message never overwrites a newer report.
func (w *ReportWorker) HandleSnapshotMessage(ctx context.Context, msg *amqp.LedgerSnapshotMessage) error {
	slog.InfoContext(ctx, "Processing ledger snapshot",
		"revision", msg.Revision,
		"transactions", len(msg.Transactions),
		"timestamp", msg.Timestamp)

	w.mu.Lock()
	stale := !w.lastSeen.IsZero() && msg.Timestamp.Before(w.lastSeen)
	w.mu.Unlock()
	if stale {
		slog.InfoContext(ctx, "Skipping stale ledger snapshot",
			"revision", msg.Revision,
			"timestamp", msg.Timestamp)
		return nil
	}

	r, err := BuildReport(msg, w.now())
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}
	if err := w.writer.WriteReport(ctx, r); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	w.mu.Lock()
	if msg.Timestamp.After(w.lastSeen) {
		w.lastSeen = msg.Timestamp
	}
	w.mu.Unlock()

	slog.InfoContext(ctx, "Successfully wrote report", "revision", msg.Revision)
	return nil
}

// BuildReport computes the report for a snapshot, recomputing budget spending
// from the snapshot's transactions.
func BuildReport(msg *amqp.LedgerSnapshotMessage, now time.Time) (report.Report, error) {
	in := report.Input{
		Transactions: msg.Transactions,
		Accounts:     msg.Accounts,
		Budgets:      msg.Budgets,
		Goals:        msg.Goals,
		Currency:     msg.Currency,
	}
	return report.Build(report.WithLiveSpent(in), now)
}
