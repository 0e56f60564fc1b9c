package classify

import (
	"errors"
	"fmt"

	"github.com/pitchlab/passmap/pkg/core"
)

// ErrMissingColumn is matched by every MissingColumnError.
var ErrMissingColumn = errors.New("missing required column")

// MissingColumnError names the column an event table lacked.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumn, e.Column)
}

// Is lets errors.Is(err, ErrMissingColumn) match.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// RequiredColumns are the columns ClassifyPasses reads, in the order they are checked.
var RequiredColumns = []string{
	core.ColumnType,
	core.ColumnPassEndLocation,
	core.ColumnLocation,
}

// ClassifyPasses returns a copy of table with the pass_category column filled in for every row.
// The input table is not modified. If a required column is missing, no table is returned.
func ClassifyPasses(table core.EventTable) (core.EventTable, error) {
	for _, col := range RequiredColumns {
		if !table.HasColumn(col) {
			return core.EventTable{}, &MissingColumnError{Column: col}
		}
	}

	out := core.EventTable{
		Columns: table.WithColumn(core.ColumnPassCategory),
		Rows:    make([]core.Event, len(table.Rows)),
	}
	for i, row := range table.Rows {
		row.PassCategory = CategoryOf(row)
		out.Rows[i] = row
	}
	return out, nil
}

// CategoryOf computes the pass category of a single row.
func CategoryOf(e core.Event) core.PassCategory {
	if !e.IsPass() {
		return core.PassNonPass
	}
	if e.Location == nil || e.PassEndLocation == nil {
		return core.PassUnknown
	}

	start, end := *e.Location, *e.PassEndLocation
	if end.X > start.X {
		if IsProgressive(start, end) {
			return core.PassProgressive
		}
		return core.PassNormal
	}
	return core.PassBackwards
}

// CountByCategory tallies the labels of a classified table.
// Every category is present in the result, zero if unused.
func CountByCategory(table core.EventTable) map[core.PassCategory]int {
	counts := make(map[core.PassCategory]int, len(core.PassCategories))
	for _, c := range core.PassCategories {
		counts[c] = 0
	}
	for _, row := range table.Rows {
		if row.PassCategory != "" {
			counts[row.PassCategory]++
		}
	}
	return counts
}
