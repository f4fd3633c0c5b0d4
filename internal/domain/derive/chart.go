package derive

import (
	"sort"
	"strings"
)

// Placeholder reasons surfaced when a chart has nothing to plot. The chart
// renderer needs at least one slice, so an empty aggregation is represented
// by a single neutral entry labeled with one of these.
const (
	ReasonLoading      = "Loading…"
	ReasonOutsideScope = "Spending Outside Scope"
	ReasonNoSpending   = "No Spending Recorded Yet"

	noTransactionsLabel = "No Associated Transactions"
)

type Slice struct {
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

type KeyEntry struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// ChartData is one pie chart's worth of derived state: slices in legend
// order plus the parallel legend entries. Recomputed on every fetch, never
// persisted.
type ChartData struct {
	Series []Slice    `json:"series"`
	Key    []KeyEntry `json:"key"`
}

// Total sums the slice values. For a non-empty aggregation this equals the
// total matched spending; for a placeholder it is exactly 1.
func (c ChartData) Total() float64 {
	var total float64
	for _, slice := range c.Series {
		total += slice.Value
	}
	return total
}

// BudgetChart derives the chart for a budget. An unrecognized scope means
// the budget record is still loading, in which case aggregation is skipped
// and the loading placeholder comes back instead.
func BudgetChart(scope string, declared []string, txs []Transaction, alloc *ColorAllocator) ChartData {
	policy, ok := ParseScopePolicy(scope)
	if !ok {
		return placeholderChart(ReasonLoading)
	}

	agg := Aggregate(txs, policy, declared)
	return buildChart(agg, displayNames(agg, policy, declared), alloc)
}

// TransactionsChart derives the chart for a goal or a bank, which aggregate
// every associated transaction's own categories, EXCLUSIVE-style.
func TransactionsChart(txs []Transaction, alloc *ColorAllocator) ChartData {
	agg := Aggregate(txs, ScopeExclusive, nil)
	return buildChart(agg, displayNames(agg, ScopeExclusive, nil), alloc)
}

func buildChart(agg Aggregation, display map[string]string, alloc *ColorAllocator) ChartData {
	if len(agg.Totals) == 0 {
		if agg.HadSpending {
			return placeholderChart(ReasonOutsideScope)
		}
		return placeholderChart(ReasonNoSpending)
	}

	keys := make([]string, 0, len(agg.Totals))
	for key := range agg.Totals {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return strings.ToLower(display[keys[i]]) < strings.ToLower(display[keys[j]])
	})

	chart := ChartData{
		Series: make([]Slice, 0, len(keys)),
		Key:    make([]KeyEntry, 0, len(keys)),
	}
	for _, key := range keys {
		color := alloc.ColorFor(key)
		chart.Series = append(chart.Series, Slice{Value: agg.Totals[key], Color: color})
		chart.Key = append(chart.Key, KeyEntry{Name: display[key], Color: color, Icon: IconFor(key)})
	}
	return chart
}

// displayNames resolves lowercased aggregation keys to legend casing:
// INCLUSIVE keeps the budget's declared casing, EXCLUSIVE capitalizes the
// first letter of the lowercased key.
func displayNames(agg Aggregation, policy ScopePolicy, declared []string) map[string]string {
	display := make(map[string]string, len(agg.Totals))

	if policy == ScopeInclusive {
		for _, name := range declared {
			display[strings.ToLower(name)] = name
		}
		return display
	}

	for key := range agg.Totals {
		display[key] = capitalizeFirst(key)
	}
	return display
}

func placeholderChart(reason string) ChartData {
	label := reason
	if strings.Contains(strings.ToLower(reason), "no spending") {
		label = noTransactionsLabel
	}

	return ChartData{
		Series: []Slice{{Value: 1, Color: NeutralColor}},
		Key:    []KeyEntry{{Name: label, Color: NeutralColor, Icon: FallbackIcon}},
	}
}

func capitalizeFirst(value string) string {
	if value == "" {
		return value
	}
	runes := []rune(value)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
