package derive

import "testing"

func TestAggregateInclusiveMatchesDeclaredCategories(t *testing.T) {
	txs := []Transaction{
		{Amount: "$100", Categories: []string{"Groceries"}},
		{Amount: "$50", Categories: []string{"Groceries"}},
		{Amount: "$30", Categories: []string{"Entertainment"}},
	}

	agg := Aggregate(txs, ScopeInclusive, []string{"Groceries", "Transit"})

	if !agg.HadSpending {
		t.Fatal("expected HadSpending")
	}
	if len(agg.Totals) != 1 {
		t.Fatalf("expected 1 retained category, got %d: %+v", len(agg.Totals), agg.Totals)
	}
	if agg.Totals["groceries"] != 150 {
		t.Fatalf("expected groceries total 150, got %v", agg.Totals["groceries"])
	}
}

func TestAggregateInclusiveDropsZeroDeclaredCategories(t *testing.T) {
	agg := Aggregate(nil, ScopeInclusive, []string{"Groceries", "Transit"})

	if agg.HadSpending {
		t.Fatal("expected no spending")
	}
	if len(agg.Totals) != 0 {
		t.Fatalf("expected no retained categories, got %+v", agg.Totals)
	}
}

func TestAggregateInclusiveFlagsSpendingOutsideScope(t *testing.T) {
	txs := []Transaction{
		{Amount: "$75", Categories: []string{"Entertainment"}},
	}

	agg := Aggregate(txs, ScopeInclusive, []string{"Groceries"})

	if len(agg.Totals) != 0 {
		t.Fatalf("expected no retained categories, got %+v", agg.Totals)
	}
	if !agg.HadSpending {
		t.Fatal("expected HadSpending so the caller can report out-of-scope spending")
	}
}

func TestAggregateInclusiveMultiCategoryCountsEachDeclaredMatch(t *testing.T) {
	txs := []Transaction{
		{Amount: "$40", Categories: []string{"Groceries", "Dining"}},
	}

	agg := Aggregate(txs, ScopeInclusive, []string{"Groceries", "Dining"})

	if agg.Totals["groceries"] != 40 || agg.Totals["dining"] != 40 {
		t.Fatalf("expected 40 under each declared category, got %+v", agg.Totals)
	}
}

func TestAggregateInclusiveRetainedTotalsBoundedByParsedTotal(t *testing.T) {
	txs := []Transaction{
		{Amount: "$100", Categories: []string{"Groceries"}},
		{Amount: "$60", Categories: []string{"Transit"}},
		{Amount: "$25", Categories: []string{"Entertainment"}},
	}

	agg := Aggregate(txs, ScopeInclusive, []string{"Groceries", "Transit"})

	var retained, parsed float64
	for _, total := range agg.Totals {
		retained += total
	}
	for _, tx := range txs {
		parsed += ParseAmount(tx.Amount)
	}
	if retained > parsed {
		t.Fatalf("retained %v exceeds parsed total %v", retained, parsed)
	}
	if retained != 160 {
		t.Fatalf("expected retained 160, got %v", retained)
	}
}

func TestAggregateExclusiveGroupsByOwnCategories(t *testing.T) {
	txs := []Transaction{
		{Amount: "$20", Categories: []string{"Dining"}},
		{Amount: "$10", Categories: []string{"dining"}},
		{Amount: "$5"},
	}

	agg := Aggregate(txs, ScopeExclusive, nil)

	if agg.Totals["dining"] != 30 {
		t.Fatalf("expected dining 30, got %v", agg.Totals["dining"])
	}
	if agg.Totals["uncategorized"] != 5 {
		t.Fatalf("expected uncategorized 5, got %v", agg.Totals["uncategorized"])
	}
}

func TestAggregateExclusiveSkipsNonPositiveAmounts(t *testing.T) {
	txs := []Transaction{
		{Amount: "$0", Categories: []string{"Dining"}},
		{Amount: "garbage", Categories: []string{"Dining"}},
	}

	agg := Aggregate(txs, ScopeExclusive, nil)

	if agg.HadSpending {
		t.Fatal("expected no spending for zero and malformed amounts")
	}
	if len(agg.Totals) != 0 {
		t.Fatalf("expected empty totals, got %+v", agg.Totals)
	}
}

func TestParseScopePolicy(t *testing.T) {
	if policy, ok := ParseScopePolicy("inclusive"); !ok || policy != ScopeInclusive {
		t.Fatalf("expected INCLUSIVE, got %q ok=%v", policy, ok)
	}
	if policy, ok := ParseScopePolicy(" EXCLUSIVE "); !ok || policy != ScopeExclusive {
		t.Fatalf("expected EXCLUSIVE, got %q ok=%v", policy, ok)
	}
	if _, ok := ParseScopePolicy(""); ok {
		t.Fatal("expected empty scope to be unrecognized")
	}
	if _, ok := ParseScopePolicy("both"); ok {
		t.Fatal("expected unknown scope to be unrecognized")
	}
}
