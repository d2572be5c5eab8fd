package classifier

import (
	"testing"

	"fintrack/internal/core"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        core.Category
	}{
		{name: "grocery", description: "Grocery Shopping", want: core.Food},
		{name: "salary", description: "Monthly Salary", want: core.Income},
		{name: "no match", description: "random text xyz", want: core.Other},
		{name: "empty", description: "", want: core.Other},
		{name: "upper case", description: "GROCERY STORE PURCHASE", want: core.Food},
		{name: "coffee", description: "Coffee Shop", want: core.Food},
		{name: "uber", description: "Uber Ride", want: core.Transport},
		{name: "gas station", description: "Gas Station", want: core.Transport},
		{name: "movie", description: "Movie Tickets", want: core.Entertainment},
		{name: "rent", description: "RENT PAYMENT", want: core.Housing},
		{name: "electricity", description: "Electricity Bill", want: core.Utilities},
		{name: "utility", description: "UTILITY BILL PAYMENT", want: core.Utilities},
		{name: "pharmacy", description: "Pharmacy", want: core.Health},
		{name: "course", description: "Online Course", want: core.Education},
		{name: "deposit", description: "SALARY DEPOSIT", want: core.Income},
		{name: "atm", description: "ATM WITHDRAWAL", want: core.Other},
		{name: "substring inside word", description: "Parental leave", want: core.Housing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.description); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.description, got, tt.want)
			}
		})
	}
}

func TestClassifyFirstRuleWins(t *testing.T) {
	tests := []struct {
		description string
		want        core.Category
	}{
		// Food is checked before Income.
		{"food deposit", core.Food},
		// Transport is checked before Utilities.
		{"gas bill", core.Transport},
		// Housing is checked before Utilities.
		{"rent and water bill", core.Housing},
		// Entertainment before Income.
		{"netflix income", core.Entertainment},
	}
	for _, tt := range tests {
		if got := Classify(tt.description); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.description, got, tt.want)
		}
	}
}

func TestDefaultRulesOrder(t *testing.T) {
	want := []core.Category{
		core.Food, core.Transport, core.Entertainment, core.Housing,
		core.Utilities, core.Health, core.Education, core.Income,
	}
	if len(DefaultRules) != len(want) {
		t.Fatalf("expected %d rules, got %d", len(want), len(DefaultRules))
	}
	for i, r := range DefaultRules {
		if r.Category != want[i] {
			t.Fatalf("rule %d category = %v, want %v", i, r.Category, want[i])
		}
	}
}

func TestCustomRulesAndFallback(t *testing.T) {
	c := New([]Rule{{Keywords: []string{"AMAZON"}, Category: core.Shopping}}).WithFallback(core.Personal)
	if got := c.Classify("amazon marketplace"); got != core.Shopping {
		t.Fatalf("expected Shopping, got %v", got)
	}
	if got := c.Classify("haircut"); got != core.Personal {
		t.Fatalf("expected fallback Personal, got %v", got)
	}
	var zero Classifier
	if got := zero.Classify("anything"); got != core.Other {
		t.Fatalf("zero classifier should return Other, got %v", got)
	}
}

func TestClassifyAllDoesNotMutateInput(t *testing.T) {
	in := []core.Transaction{
		{ID: "1", Description: "RESTAURANT PAYMENT"},
		{ID: "2", Description: "ONLINE SHOPPING", Category: core.Shopping},
	}
	out := ClassifyAll(in)
	if out[0].Category != core.Food {
		t.Fatalf("expected Food, got %v", out[0].Category)
	}
	if out[1].Category != core.Shopping {
		t.Fatalf("existing category must be kept, got %v", out[1].Category)
	}
	if in[0].Category != "" {
		t.Fatalf("input was mutated")
	}
}
