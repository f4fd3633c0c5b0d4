package derive

import "strings"

// ScopePolicy controls which transactions count toward a budget.
//
// INCLUSIVE counts any transaction whose categories intersect the budget's
// declared set, regardless of explicit assignment. EXCLUSIVE counts only
// transactions explicitly assigned to the budget, grouped by their own
// categories. Goal and bank charts aggregate like EXCLUSIVE.
type ScopePolicy string

const (
	ScopeInclusive ScopePolicy = "INCLUSIVE"
	ScopeExclusive ScopePolicy = "EXCLUSIVE"
)

// ParseScopePolicy reports the recognized policy, if any. An unknown or
// empty value means the owning record has not finished loading and
// aggregation must not run.
func ParseScopePolicy(value string) (ScopePolicy, bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case string(ScopeInclusive):
		return ScopeInclusive, true
	case string(ScopeExclusive):
		return ScopeExclusive, true
	}
	return "", false
}

// UncategorizedLabel groups transactions that carry no category of their own
// under EXCLUSIVE aggregation.
const UncategorizedLabel = "Uncategorized"

// Transaction is the snapshot view the derivation core works on. Amount
// stays currency-formatted text until ParseAmount runs.
type Transaction struct {
	Amount     string
	Categories []string
}

// Aggregation maps lowercased category names to accumulated positive
// amounts. HadSpending records whether any transaction in the snapshot had a
// positive parsed amount at all, which distinguishes "nothing matched the
// scope" from "no transactions recorded".
type Aggregation struct {
	Totals      map[string]float64
	HadSpending bool
}

// Aggregate accumulates spending per category under the given policy.
// declared is only consulted for INCLUSIVE.
func Aggregate(txs []Transaction, policy ScopePolicy, declared []string) Aggregation {
	if policy == ScopeInclusive {
		return aggregateInclusive(txs, declared)
	}
	return aggregateExclusive(txs)
}

func aggregateInclusive(txs []Transaction, declared []string) Aggregation {
	totals := make(map[string]float64, len(declared))
	for _, name := range declared {
		totals[strings.ToLower(name)] = 0
	}

	hadSpending := false
	for _, tx := range txs {
		amount := ParseAmount(tx.Amount)
		if amount > 0 {
			hadSpending = true
		}
		for _, category := range tx.Categories {
			key := strings.ToLower(category)
			if _, declared := totals[key]; declared {
				totals[key] += amount
			}
		}
	}

	// Declared categories that gathered nothing never reach the chart.
	for key, total := range totals {
		if !(total > 0) {
			delete(totals, key)
		}
	}

	return Aggregation{Totals: totals, HadSpending: hadSpending}
}

func aggregateExclusive(txs []Transaction) Aggregation {
	totals := make(map[string]float64)

	hadSpending := false
	for _, tx := range txs {
		amount := ParseAmount(tx.Amount)
		if !(amount > 0) {
			continue
		}
		hadSpending = true

		categories := tx.Categories
		if len(categories) == 0 {
			categories = []string{UncategorizedLabel}
		}
		for _, category := range categories {
			totals[strings.ToLower(category)] += amount
		}
	}

	return Aggregation{Totals: totals, HadSpending: hadSpending}
}
