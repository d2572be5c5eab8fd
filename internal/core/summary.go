package core

import "encoding/json"

// CategoryAmount represents an amount aggregated by category.
type CategoryAmount struct {
	Category Category `json:"category"`
	Amount   Money    `json:"amount"`
}

// CategoryTotals maps categories to accumulated amounts and remembers the
// order in which each category was first added. A category that was never
// added is absent, not zero.
type CategoryTotals struct {
	order  []Category
	totals map[Category]Money
}

func NewCategoryTotals() *CategoryTotals {
	return &CategoryTotals{totals: make(map[Category]Money)}
}

// Add accumulates amount under c, registering c on first use.
func (t *CategoryTotals) Add(c Category, amount Money) {
	if t.totals == nil {
		t.totals = make(map[Category]Money)
	}
	cur, ok := t.totals[c]
	if !ok {
		t.order = append(t.order, c)
	}
	t.totals[c] = cur.Add(amount)
}

func (t *CategoryTotals) Get(c Category) (Money, bool) {
	if t == nil {
		return Money{}, false
	}
	m, ok := t.totals[c]
	return m, ok
}

func (t *CategoryTotals) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Entries returns the totals in first-accumulated order.
func (t *CategoryTotals) Entries() []CategoryAmount {
	if t == nil {
		return nil
	}
	out := make([]CategoryAmount, 0, len(t.order))
	for _, c := range t.order {
		out = append(out, CategoryAmount{Category: c, Amount: t.totals[c]})
	}
	return out
}

func (t *CategoryTotals) Total() Money {
	var sum Money
	if t == nil {
		return sum
	}
	for _, m := range t.totals {
		sum = sum.Add(m)
	}
	return sum
}

// MarshalJSON encodes the totals as an ordered list of {category, amount}.
func (t *CategoryTotals) MarshalJSON() ([]byte, error) {
	entries := t.Entries()
	if entries == nil {
		entries = []CategoryAmount{}
	}
	return json.Marshal(entries)
}
