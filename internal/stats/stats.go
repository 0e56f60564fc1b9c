// Package stats aggregates classified pass events into per-player figures.
package stats

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pitchlab/passmap/pkg/core"
)

var (
	// ErrPlayerNotFound is returned when a player has no aggregate row.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrNotClassified is returned when aggregating a table without the pass_category column.
	ErrNotClassified = errors.New("event table has not been classified")
)

// Table holds one aggregate row per player.
type Table struct {
	rows  []core.PlayerStats
	index map[string]int
}

// NewTable builds a lookup table from precomputed rows.
// When a player appears more than once the first row wins.
func NewTable(rows []core.PlayerStats) Table {
	t := Table{
		rows:  make([]core.PlayerStats, 0, len(rows)),
		index: make(map[string]int, len(rows)),
	}
	for _, r := range rows {
		if _, dup := t.index[r.Player]; dup {
			continue
		}
		t.index[r.Player] = len(t.rows)
		t.rows = append(t.rows, r)
	}
	return t
}

// Aggregate counts passes, completions and progressive passes per player.
// Rows without a player name are ignored.
func Aggregate(table core.EventTable) (Table, error) {
	if !table.HasColumn(core.ColumnPassCategory) {
		return Table{}, ErrNotClassified
	}

	byPlayer := map[string]*core.PlayerStats{}
	var order []string
	for _, e := range table.Rows {
		if !e.IsPass() || e.Player == "" {
			continue
		}
		s, ok := byPlayer[e.Player]
		if !ok {
			s = &core.PlayerStats{Player: e.Player, Team: e.Team}
			byPlayer[e.Player] = s
			order = append(order, e.Player)
		}
		s.PassCount++
		if e.IsComplete() {
			s.CompletedCount++
		}
		if e.PassCategory == core.PassProgressive {
			s.ProgressivePassCount++
		}
	}

	rows := make([]core.PlayerStats, 0, len(order))
	for _, name := range order {
		s := byPlayer[name]
		s.CompletionPercentage = CompletionPercentage(s.CompletedCount, s.PassCount)
		rows = append(rows, *s)
	}
	return NewTable(rows), nil
}

// CompletionPercentage returns completed/attempted as a percentage, 0 when nothing was attempted.
func CompletionPercentage(completed, attempted int) float64 {
	if attempted == 0 {
		return 0
	}
	return float64(completed) / float64(attempted) * 100
}

// Lookup returns the aggregate row for an exact player name.
func (t Table) Lookup(player string) (core.PlayerStats, bool) {
	i, ok := t.index[player]
	if !ok {
		return core.PlayerStats{}, false
	}
	return t.rows[i], true
}

// Find is Lookup with a checked error for callers that cannot continue without the row.
func (t Table) Find(player string) (core.PlayerStats, error) {
	s, ok := t.Lookup(player)
	if !ok {
		return core.PlayerStats{}, fmt.Errorf("%w: %q", ErrPlayerNotFound, player)
	}
	return s, nil
}

// Len returns the number of players.
func (t Table) Len() int {
	return len(t.rows)
}

// Rows returns the rows in the order they were added.
func (t Table) Rows() []core.PlayerStats {
	out := make([]core.PlayerStats, len(t.rows))
	copy(out, t.rows)
	return out
}

// Sorted returns the rows ordered by progressive pass count (descending), then player name.
func (t Table) Sorted() []core.PlayerStats {
	out := t.Rows()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ProgressivePassCount != out[j].ProgressivePassCount {
			return out[i].ProgressivePassCount > out[j].ProgressivePassCount
		}
		return out[i].Player < out[j].Player
	})
	return out
}
