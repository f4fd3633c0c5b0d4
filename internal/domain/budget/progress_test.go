package budget

import "testing"

func TestProgressExpenseSemantics(t *testing.T) {
	cases := []struct {
		target, remaining string
		want              int
	}{
		{"$200", "$50", 25},
		{"$200", "$250", 100}, // remaining >= target pins the bar
		{"$200", "$200", 100},
		{"$200", "$0", 0},
		{"$0", "$0", 100}, // remaining >= target branch
		{"$300", "$100", 33},
	}

	for _, tc := range cases {
		if got := Progress(tc.target, tc.remaining, "Expense", "Budget"); got != tc.want {
			t.Errorf("Progress(%q, %q, Expense) = %d, want %d", tc.target, tc.remaining, got, tc.want)
		}
	}
}

func TestProgressSavingsSemantics(t *testing.T) {
	cases := []struct {
		target, remaining string
		want              int
	}{
		{"$200", "$50", 25},
		{"$200", "$0", 0}, // explicit zero-remaining rule
		{"$200", "$200", 100},
		{"$200", "$300", 100}, // overshoot clamps
	}

	for _, tc := range cases {
		if got := Progress(tc.target, tc.remaining, "Savings", "Goal"); got != tc.want {
			t.Errorf("Progress(%q, %q, Savings) = %d, want %d", tc.target, tc.remaining, got, tc.want)
		}
	}
}

func TestProgressAlwaysClamped(t *testing.T) {
	inputs := []struct {
		target, remaining, category string
	}{
		{"", "", "Savings"},
		{"", "", "Expense"},
		{"garbage", "$50", "Expense"},
		{"$10", "nonsense", "Savings"},
		{"$-100", "$50", "Expense"},
		{"$0.01", "$999999", "Savings"},
	}

	for _, tc := range inputs {
		got := Progress(tc.target, tc.remaining, tc.category, "Budget")
		if got < 0 || got > 100 {
			t.Errorf("Progress(%q, %q, %q) = %d, outside [0,100]", tc.target, tc.remaining, tc.category, got)
		}
	}
}

func TestProgressGoalAndBudgetShareFormula(t *testing.T) {
	if Progress("$400", "$120", "Savings", "Goal") != Progress("$400", "$120", "Savings", "Budget") {
		t.Fatal("goal and budget progress diverged for identical inputs")
	}
}
