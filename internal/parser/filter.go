package parser

import (
	"slices"

	"github.com/pitchlab/passmap/pkg/core"
)

// Filter selects the pass rows handed to the renderer. Zero-valued fields match everything.
type Filter struct {
	Player     string
	Team       string
	Period     int
	Categories []core.PassCategory
}

// FilterPasses returns the pass rows of table matching f, in their original order.
// The column list is kept as is.
func FilterPasses(table core.EventTable, f Filter) core.EventTable {
	out := core.EventTable{Columns: slices.Clone(table.Columns)}
	for _, e := range table.Rows {
		if f.matches(e) {
			out.Rows = append(out.Rows, e)
		}
	}
	return out
}

func (f Filter) matches(e core.Event) bool {
	if !e.IsPass() {
		return false
	}
	if f.Player != "" && e.Player != f.Player {
		return false
	}
	if f.Team != "" && e.Team != f.Team {
		return false
	}
	if f.Period != 0 && e.Period != f.Period {
		return false
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, e.PassCategory) {
		return false
	}
	return true
}
