package sheets

import (
	"context"

	"fintrack/internal/report"
)

// Ports for outbound adapters.
type (
	// ReportWriter receives every report built by the worker.
	ReportWriter interface {
		WriteReport(ctx context.Context, r report.Report) error
	}
)
