package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"fintrack/internal/report"
	ports "fintrack/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

const defaultSheetName = "Report"

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// Ensure interface conformance
var _ ports.ReportWriter = (*Client)(nil)

// Options configures the Sheets client. Credentials come from CredentialsJSON,
// CredentialsFile, or GOOGLE_APPLICATION_CREDENTIALS, in that order.
type Options struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsJSON string
	CredentialsFile string
}

// New creates a Sheets client authenticated with a service account.
func New(ctx context.Context, opts Options) (*Client, error) {
	spreadsheetID := strings.TrimSpace(opts.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	sheetName := strings.TrimSpace(opts.SheetName)
	if sheetName == "" {
		sheetName = defaultSheetName
	}

	credentialsJSON, err := loadCredentials(ctx, opts.CredentialsJSON, opts.CredentialsFile)
	if err != nil {
		return nil, err
	}
	svc, err := newSheetsService(ctx, credentialsJSON)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

func loadCredentials(ctx context.Context, inline, file string) ([]byte, error) {
	inline = strings.TrimSpace(inline)
	file = strings.TrimSpace(file)
	if inline == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
		slog.DebugContext(ctx, "Checking GOOGLE_APPLICATION_CREDENTIALS", "path", file)
	}

	switch {
	case inline != "":
		slog.InfoContext(ctx, "Using inline JSON credentials")
		return []byte(inline), nil
	case file != "":
		slog.InfoContext(ctx, "Reading credentials from file", "path", file)
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return raw, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

func newSheetsService(ctx context.Context, credentialsJSON []byte) (*gsheet.Service, error) {
	slog.InfoContext(ctx, "Creating Google Sheets service with Service Account",
		"credentials_size", len(credentialsJSON),
		"scope", gsheet.SpreadsheetsScope)

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// WriteReport replaces the contents of the report sheet with r, creating the
// sheet on first use.
func (c *Client) WriteReport(ctx context.Context, r report.Report) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	if err := c.ensureSheet(ctx); err != nil {
		return err
	}

	rng := quoteSheet(c.sheetName)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear report sheet: %w", err)
	}

	rows := reportRows(r)
	vr := &gsheet.ValueRange{Values: rows}
	resp, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng+"!A1", vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update report sheet: %w", err)
	}
	slog.InfoContext(ctx, "Report exported to Google Sheets",
		"spreadsheet_id", c.spreadsheetID,
		"sheet", c.sheetName,
		"rows", resp.UpdatedRows)
	return nil
}

func (c *Client) ensureSheet(ctx context.Context) error {
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == c.sheetName {
			return nil
		}
	}
	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: c.sheetName},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add report sheet: %w", err)
	}
	slog.InfoContext(ctx, "Created report sheet", "sheet", c.sheetName)
	return nil
}

// quoteSheet wraps a sheet name for A1 notation, doubling embedded quotes.
func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// textCell keeps user-entered text literal under USER_ENTERED: a leading
// apostrophe stops Sheets from evaluating it as a formula.
func textCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@':
		return "'" + s
	}
	return s
}

// reportRows lays the report out as labelled sections separated by blank
// rows. Amounts are plain decimals so USER_ENTERED parses them as numbers.
func reportRows(r report.Report) [][]interface{} {
	rows := [][]interface{}{
		{"Generated", r.GeneratedAt.UTC().Format(time.RFC3339)},
		{"Currency", string(r.Currency)},
		{},
		{"Summary"},
		{"Income", r.Summary.Income.String()},
		{"Expenses", r.Summary.Expenses.String()},
		{"Balance", r.Summary.Balance.String()},
		{},
		{"Category", "Amount"},
	}
	for _, e := range r.Summary.Categories.Entries() {
		rows = append(rows, []interface{}{string(e.Category), e.Amount.String()})
	}

	rows = append(rows, []interface{}{}, []interface{}{"Insights"})
	if top := r.Insights.TopCategory; top != nil {
		rows = append(rows, []interface{}{"Top category", string(top.Category), top.Amount.String()})
	}
	rows = append(rows,
		[]interface{}{"Daily average", r.Insights.DailyAverage.StringFixed(2)},
		[]interface{}{"High daily spend", r.Insights.HighDailySpend},
		[]interface{}{"Transactions", r.Insights.TransactionsCount},
	)
	if len(r.Insights.UnusualSpending) > 0 {
		rows = append(rows, []interface{}{}, []interface{}{"Date", "Description", "Category", "Amount"})
		for _, tx := range r.Insights.UnusualSpending {
			rows = append(rows, []interface{}{
				tx.Date.Format("2006-01-02"), textCell(tx.Description), string(tx.Category), tx.Amount.String(),
			})
		}
	}

	nw := r.NetWorth
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Net worth"},
		[]interface{}{"Assets", nw.Assets.String()},
		[]interface{}{"Liabilities", nw.Liabilities.String()},
		[]interface{}{"Net worth", nw.NetWorth.String()},
		[]interface{}{"Cash", nw.CashTotal.String()},
		[]interface{}{"Investments", nw.InvestmentTotal.String()},
		[]interface{}{"Debt", nw.DebtTotal.String()},
	)

	if len(r.Budgets) > 0 {
		rows = append(rows, []interface{}{}, []interface{}{"Category", "Limit", "Spent", "Remaining", "Percentage", "Tier"})
		for _, b := range r.Budgets {
			pct := b.Percentage.StringFixed(1)
			if b.Undefined {
				pct = "-"
			}
			rows = append(rows, []interface{}{
				string(b.Category), b.Limit.String(), b.Spent.String(), b.Remaining.String(), pct, b.Tier.String(),
			})
		}
	}

	if len(r.Goals) > 0 {
		rows = append(rows, []interface{}{}, []interface{}{"Goal", "Percentage", "Remaining", "Complete"})
		for _, g := range r.Goals {
			rows = append(rows, []interface{}{textCell(g.Name), g.Percentage.StringFixed(1), g.Remaining.String(), g.Complete})
		}
	}
	return rows
}
