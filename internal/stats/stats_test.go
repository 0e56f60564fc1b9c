package stats

import (
	"testing"

	"github.com/pitchlab/passmap/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifiedTable(rows ...core.Event) core.EventTable {
	return core.EventTable{
		Columns: []string{core.ColumnType, core.ColumnPlayer, core.ColumnPassOutcome, core.ColumnPassCategory},
		Rows:    rows,
	}
}

func passBy(player string, cat core.PassCategory, outcome string) core.Event {
	return core.Event{Type: core.EventTypePass, Player: player, Team: "Home", PassCategory: cat, PassOutcome: outcome}
}

func TestAggregate(t *testing.T) {
	table := classifiedTable(
		passBy("Lionel Messi", core.PassProgressive, ""),
		passBy("Lionel Messi", core.PassProgressive, core.PassOutcomeIncomplete),
		passBy("Lionel Messi", core.PassNormal, ""),
		passBy("Lionel Messi", core.PassBackwards, ""),
		passBy("Sergio Busquets", core.PassNormal, "Out"),
		passBy("Sergio Busquets", core.PassUnknown, ""),
		core.Event{Type: "Shot", Player: "Lionel Messi", PassCategory: core.PassNonPass},
		core.Event{Type: core.EventTypePass, PassCategory: core.PassNormal},
	)

	agg, err := Aggregate(table)
	require.NoError(t, err)
	require.Equal(t, 2, agg.Len())

	messi, ok := agg.Lookup("Lionel Messi")
	require.True(t, ok)
	assert.Equal(t, "Home", messi.Team)
	assert.Equal(t, 4, messi.PassCount)
	assert.Equal(t, 3, messi.CompletedCount)
	assert.Equal(t, 2, messi.ProgressivePassCount)
	assert.InDelta(t, 75.0, messi.CompletionPercentage, 1e-9)

	busi, err := agg.Find("Sergio Busquets")
	require.NoError(t, err)
	assert.Equal(t, 2, busi.PassCount)
	assert.Equal(t, 0, busi.ProgressivePassCount)
	assert.InDelta(t, 50.0, busi.CompletionPercentage, 1e-9)
}

func TestAggregate_RequiresClassification(t *testing.T) {
	_, err := Aggregate(core.EventTable{Columns: []string{core.ColumnType}})
	assert.ErrorIs(t, err, ErrNotClassified)
}

func TestFind_NotFound(t *testing.T) {
	agg := NewTable([]core.PlayerStats{{Player: "Xavi"}})

	_, ok := agg.Lookup("xavi")
	assert.False(t, ok, "lookup is an exact match")

	_, err := agg.Find("Andrés Iniesta")
	require.ErrorIs(t, err, ErrPlayerNotFound)
	assert.Contains(t, err.Error(), "Andrés Iniesta")
}

func TestNewTable_FirstRowWins(t *testing.T) {
	agg := NewTable([]core.PlayerStats{
		{Player: "Xavi", ProgressivePassCount: 4},
		{Player: "Xavi", ProgressivePassCount: 9},
	})
	assert.Equal(t, 1, agg.Len())
	s, _ := agg.Lookup("Xavi")
	assert.Equal(t, 4, s.ProgressivePassCount)
}

func TestSorted(t *testing.T) {
	agg := NewTable([]core.PlayerStats{
		{Player: "C", ProgressivePassCount: 1},
		{Player: "B", ProgressivePassCount: 5},
		{Player: "A", ProgressivePassCount: 1},
	})

	sorted := agg.Sorted()
	require.Len(t, sorted, 3)
	assert.Equal(t, []string{"B", "A", "C"}, []string{sorted[0].Player, sorted[1].Player, sorted[2].Player})
	assert.Equal(t, "C", agg.Rows()[0].Player, "Sorted must not reorder the table")
}

func TestCompletionPercentage(t *testing.T) {
	assert.Equal(t, 0.0, CompletionPercentage(0, 0))
	assert.InDelta(t, 66.666, CompletionPercentage(2, 3), 0.001)
	assert.Equal(t, 100.0, CompletionPercentage(7, 7))
}
