package budget

import (
	"math"
	"strings"

	"circlefin-go/internal/domain/derive"
)

// Progress turns target/remaining currency text into a whole-number
// progress-bar percentage, clamped to [0,100].
//
// Savings semantics (category lowercases to "savings") read remaining as
// "accumulated so far", with an explicit zero when nothing is saved yet.
// Expense semantics read remaining as "allowance left" and pin the bar at
// 100 once remaining meets or exceeds the target. itemType distinguishes
// goals from budgets in the caller's logs; both currently share the same
// formula.
func Progress(target, remaining, category, itemType string) int {
	_ = itemType

	targetAmount := derive.ParseAmount(target)
	remainingAmount := derive.ParseAmount(remaining)

	var pct float64
	if strings.ToLower(strings.TrimSpace(category)) == "savings" {
		switch {
		case remainingAmount == 0:
			pct = 0
		case targetAmount != 0:
			pct = remainingAmount / targetAmount * 100
		}
	} else {
		if remainingAmount < targetAmount {
			if targetAmount != 0 {
				pct = remainingAmount / targetAmount * 100
			}
		} else {
			pct = 100
		}
	}

	rounded := int(math.Round(pct))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}
