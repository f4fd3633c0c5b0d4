package derive

import "strings"

// defaultPalette cycles when a chart has more categories than colors.
// Sixteen entries keeps repeats rare for realistic category counts.
var defaultPalette = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
	"#14B8A6", "#EAB308", "#A855F7", "#22C55E", "#0EA5E9",
	"#F43F5E",
}

// NeutralColor fills the single placeholder slice rendered when a chart has
// nothing to show.
const NeutralColor = "#CBD5E1"

// ColorAllocator hands out palette colors to categories in first-encounter
// order and memoizes the assignment. It is not a hash: the same category can
// get a different color across sessions when discovery order changes. One
// allocator belongs to exactly one derivation session; concurrent
// derivations must each use their own.
type ColorAllocator struct {
	palette  []string
	assigned map[string]string
}

func NewColorAllocator() *ColorAllocator {
	return &ColorAllocator{
		palette:  defaultPalette,
		assigned: make(map[string]string),
	}
}

// ColorFor returns the memoized color for the category, assigning the next
// palette entry on first encounter. Lookup is case-insensitive.
func (a *ColorAllocator) ColorFor(category string) string {
	key := strings.ToLower(category)
	if color, ok := a.assigned[key]; ok {
		return color
	}

	color := a.palette[len(a.assigned)%len(a.palette)]
	a.assigned[key] = color
	return color
}

// Reset drops every assignment so the next category seen gets the first
// palette color again. Callers reset at the start of each fresh data load.
func (a *ColorAllocator) Reset() {
	a.assigned = make(map[string]string)
}
