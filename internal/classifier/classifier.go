// Package classifier maps free-text transaction descriptions to a category.
//
// Classification walks an ordered list of keyword rules and returns the
// category of the first rule with a keyword contained in the lowercased
// description. Rule order is part of the behaviour: "gas bill" is Transport
// because the Transport rule comes before Utilities.
package classifier

import (
	"strings"

	"fintrack/internal/core"
)

// Rule assigns Category to any description containing one of Keywords.
// Keywords are matched in lower case.
type Rule struct {
	Keywords []string
	Category core.Category
}

// DefaultRules is the ordered rule set used by Classify.
var DefaultRules = []Rule{
	{Keywords: []string{"grocery", "restaurant", "food", "coffee"}, Category: core.Food},
	{Keywords: []string{"uber", "lyft", "gas", "transport"}, Category: core.Transport},
	{Keywords: []string{"movie", "netflix", "entertainment"}, Category: core.Entertainment},
	{Keywords: []string{"rent", "mortgage"}, Category: core.Housing},
	{Keywords: []string{"electricity", "water", "utility", "bill"}, Category: core.Utilities},
	{Keywords: []string{"doctor", "pharmacy", "health"}, Category: core.Health},
	{Keywords: []string{"course", "school", "education"}, Category: core.Education},
	{Keywords: []string{"salary", "income", "deposit"}, Category: core.Income},
}

// Classifier holds an ordered rule set and the category returned when no
// rule matches. The zero value classifies everything as Other.
type Classifier struct {
	rules    []Rule
	fallback core.Category
}

// New returns a Classifier over a copy of rules with Other as fallback.
func New(rules []Rule) *Classifier {
	copied := make([]Rule, len(rules))
	for i, r := range rules {
		kws := make([]string, len(r.Keywords))
		for j, kw := range r.Keywords {
			kws[j] = strings.ToLower(kw)
		}
		copied[i] = Rule{Keywords: kws, Category: r.Category}
	}
	return &Classifier{rules: copied, fallback: core.Other}
}

// WithFallback returns a copy of c that answers fallback when nothing matches.
func (c *Classifier) WithFallback(fallback core.Category) *Classifier {
	return &Classifier{rules: c.rules, fallback: fallback}
}

// Rules returns the rules in evaluation order.
func (c *Classifier) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// Classify returns the category of the first matching rule.
func (c *Classifier) Classify(description string) core.Category {
	desc := strings.ToLower(description)
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if kw != "" && strings.Contains(desc, kw) {
				return r.Category
			}
		}
	}
	if c.fallback == "" {
		return core.Other
	}
	return c.fallback
}

// ClassifyAll returns a new slice in which every transaction without a
// category carries the classified one. Transactions that already have a
// category are copied unchanged.
func (c *Classifier) ClassifyAll(txs []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, len(txs))
	for i, tx := range txs {
		if tx.Category == "" {
			tx.Category = c.Classify(tx.Description)
		}
		out[i] = tx
	}
	return out
}

var defaultClassifier = New(DefaultRules)

// Classify classifies description with DefaultRules.
func Classify(description string) core.Category {
	return defaultClassifier.Classify(description)
}

// ClassifyAll applies DefaultRules to every uncategorized transaction.
func ClassifyAll(txs []core.Transaction) []core.Transaction {
	return defaultClassifier.ClassifyAll(txs)
}
