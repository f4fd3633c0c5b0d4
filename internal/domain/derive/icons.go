package derive

import "strings"

// FallbackIcon covers every category the icon table does not know.
const FallbackIcon = "icons/category-generic.png"

// categoryIcons maps lowercased category names to bundled icon assets. The
// mobile client resolves these paths against its asset bundle.
var categoryIcons = map[string]string{
	"groceries":     "icons/groceries.png",
	"transit":       "icons/transit.png",
	"transport":     "icons/transit.png",
	"dining":        "icons/dining.png",
	"restaurants":   "icons/dining.png",
	"rent":          "icons/housing.png",
	"housing":       "icons/housing.png",
	"utilities":     "icons/utilities.png",
	"entertainment": "icons/entertainment.png",
	"health":        "icons/health.png",
	"shopping":      "icons/shopping.png",
	"travel":        "icons/travel.png",
	"savings":       "icons/savings.png",
	"income":        "icons/income.png",
	"education":     "icons/education.png",
	"subscriptions": "icons/subscriptions.png",
	"uncategorized": "icons/category-generic.png",
}

// IconFor never fails: unknown categories get the fallback icon.
func IconFor(category string) string {
	if icon, ok := categoryIcons[strings.ToLower(category)]; ok {
		return icon
	}
	return FallbackIcon
}
