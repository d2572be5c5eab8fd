package insights

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

var base = time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)

func expense(id string, cents int64, cat core.Category, daysAgo int) core.Transaction {
	return core.Transaction{
		ID:       id,
		Amount:   core.Money{Cents: -cents},
		Category: cat,
		Date:     base.AddDate(0, 0, -daysAgo),
	}
}

func income(id string, cents int64, daysAgo int) core.Transaction {
	return core.Transaction{ID: id, Amount: core.Money{Cents: cents}, Category: core.Income, Date: base.AddDate(0, 0, -daysAgo)}
}

func TestTopExpenseCategory(t *testing.T) {
	txs := []core.Transaction{
		expense("t1", 7845, core.Food, 0),
		income("t2", 320000, 1),
		expense("t3", 120000, core.Housing, 15),
		expense("t4", 450, core.Food, 2),
	}
	top, ok := TopExpenseCategory(txs)
	if !ok || top.Category != core.Housing || top.Amount.Cents != 120000 {
		t.Fatalf("unexpected top %+v ok=%v", top, ok)
	}
}

func TestTopExpenseCategoryTieGoesToFirstAccumulated(t *testing.T) {
	txs := []core.Transaction{
		expense("a", 1000, core.Transport, 0),
		expense("b", 600, core.Food, 0),
		expense("c", 400, core.Food, 0),
	}
	top, ok := TopExpenseCategory(txs)
	if !ok || top.Category != core.Transport {
		t.Fatalf("tie should go to Transport, got %+v", top)
	}
}

func TestTopExpenseCategoryAbsent(t *testing.T) {
	if _, ok := TopExpenseCategory(nil); ok {
		t.Fatalf("expected absent for empty input")
	}
	if _, ok := TopExpenseCategory([]core.Transaction{income("i", 100, 0)}); ok {
		t.Fatalf("expected absent when there are no expenses")
	}
}

func TestDailyAverageSpend(t *testing.T) {
	tests := []struct {
		name string
		txs  []core.Transaction
		want string
	}{
		{name: "empty", txs: nil, want: "0"},
		{name: "single expense floors span to one day", txs: []core.Transaction{expense("a", 5000, core.Food, 3)}, want: "50"},
		{
			name: "income dates count towards span",
			txs:  []core.Transaction{expense("a", 10000, core.Food, 0), income("b", 100000, 10)},
			want: "10",
		},
		{
			name: "partial day rounds span up",
			txs: []core.Transaction{
				{Amount: core.Money{Cents: -9000}, Date: base},
				{Amount: core.Money{Cents: -0}, Date: base.Add(49 * time.Hour)},
			},
			want: "30",
		},
		{name: "no expenses", txs: []core.Transaction{income("a", 100, 0), income("b", 100, 4)}, want: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DailyAverageSpend(tt.txs)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("DailyAverageSpend() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDaySpan(t *testing.T) {
	txs := []core.Transaction{{Date: base}, {Date: base.AddDate(0, 0, -15)}, {Date: base.AddDate(0, 0, -7)}}
	if got := DaySpan(txs); got != 15 {
		t.Fatalf("DaySpan = %d, want 15", got)
	}
	if got := DaySpan([]core.Transaction{{Date: base}, {Date: base}}); got != 1 {
		t.Fatalf("same-day span = %d, want 1", got)
	}

	long := base.AddDate(0, 0, -200)
	tests := []struct {
		name   string
		latest time.Time
		want   int64
	}{
		{"whole days", base, 200},
		{"one nanosecond over", base.Add(time.Nanosecond), 201},
		{"one nanosecond short", base.Add(-time.Nanosecond), 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaySpan([]core.Transaction{{Date: long}, {Date: tt.latest}})
			if got != tt.want {
				t.Errorf("DaySpan = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHighDailySpend(t *testing.T) {
	if HighDailySpend(decimal.NewFromInt(50)) {
		t.Fatalf("50 is not above the threshold")
	}
	if !HighDailySpend(decimal.RequireFromString("50.01")) {
		t.Fatalf("50.01 is above the threshold")
	}
}

func TestUnusualSpending(t *testing.T) {
	t.Run("single outlier", func(t *testing.T) {
		txs := []core.Transaction{
			expense("a", 1000, core.Food, 0),
			expense("b", 1000, core.Food, 1),
			expense("c", 1000, core.Food, 2),
			expense("d", 10000, core.Housing, 3),
		}
		got := UnusualSpending(txs)
		if len(got) != 1 || got[0].ID != "d" || got[0].Amount.Cents != -10000 {
			t.Fatalf("expected only d, got %+v", got)
		}
	})

	t.Run("fewer than three transactions", func(t *testing.T) {
		txs := []core.Transaction{expense("a", 100, core.Food, 0), expense("b", 100000, core.Food, 0)}
		if got := UnusualSpending(txs); len(got) != 0 {
			t.Fatalf("expected empty, got %+v", got)
		}
	})

	t.Run("threshold is strict", func(t *testing.T) {
		// mean = 1000, threshold = 2000
		txs := []core.Transaction{
			expense("a", 500, core.Food, 0),
			expense("b", 500, core.Food, 0),
			expense("c", 2000, core.Food, 0),
		}
		// mean = 1000, threshold 2000: c is not strictly above.
		if got := UnusualSpending(txs); len(got) != 0 {
			t.Fatalf("expected empty, got %+v", got)
		}
	})

	t.Run("amounts near the int64 range", func(t *testing.T) {
		txs := []core.Transaction{
			expense("a", 1, core.Food, 0),
			expense("b", 1, core.Food, 0),
			expense("c", 1, core.Food, 0),
			expense("d", 9_000_000_000_000_000_000, core.Housing, 0),
		}
		got := UnusualSpending(txs)
		if len(got) != 1 || got[0].ID != "d" {
			t.Fatalf("expected only d, got %+v", got)
		}
	})

	t.Run("no expenses", func(t *testing.T) {
		txs := []core.Transaction{income("a", 1, 0), income("b", 1, 0), income("c", 1, 0)}
		if got := UnusualSpending(txs); len(got) != 0 {
			t.Fatalf("expected empty, got %+v", got)
		}
	})

	t.Run("sorted descending and truncated to three", func(t *testing.T) {
		txs := []core.Transaction{income("salary", 500000, 0)}
		for i := 0; i < 20; i++ {
			txs = append(txs, expense("small", 100, core.Food, 0))
		}
		txs = append(txs,
			expense("x", 5000, core.Housing, 0),
			expense("y", 9000, core.Housing, 0),
			expense("z", 7000, core.Housing, 0),
			expense("w", 6000, core.Housing, 0),
		)
		got := UnusualSpending(txs)
		if len(got) != MaxUnusual {
			t.Fatalf("expected %d results, got %d", MaxUnusual, len(got))
		}
		for i, want := range []string{"y", "z", "w"} {
			if got[i].ID != want {
				t.Fatalf("position %d = %s, want %s", i, got[i].ID, want)
			}
		}
	})
}

func TestMeanExpense(t *testing.T) {
	txs := []core.Transaction{
		expense("a", 1000, core.Food, 0),
		expense("b", 1000, core.Food, 0),
		expense("c", 1000, core.Food, 0),
		expense("d", 10000, core.Food, 0),
		income("e", 99999, 0),
	}
	if got := MeanExpense(txs); !got.Equal(decimal.RequireFromString("32.5")) {
		t.Fatalf("MeanExpense = %s, want 32.5", got)
	}
	if !MeanExpense(nil).IsZero() {
		t.Fatalf("expected zero mean for empty input")
	}
}
