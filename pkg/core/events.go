// pkg/core/events.go
package core

import "slices"

// Column names carried by an event table.
const (
	ColumnID              = "id"
	ColumnIndex           = "index"
	ColumnPeriod          = "period"
	ColumnMinute          = "minute"
	ColumnSecond          = "second"
	ColumnType            = "type"
	ColumnPlayer          = "player"
	ColumnTeam            = "team"
	ColumnLocation        = "location"
	ColumnPassEndLocation = "pass_end_location"
	ColumnPassOutcome     = "pass_outcome"
	ColumnPassLength      = "pass_length"
	ColumnPassCategory    = "pass_category"
)

// Event types referenced by the classifier and the renderer.
const (
	EventTypePass = "Pass"

	// PassOutcomeIncomplete marks a pass that did not reach a teammate.
	// An empty outcome means the pass was completed.
	PassOutcomeIncomplete = "Incomplete"
)

// Event is one row of the event feed.
// Location and PassEndLocation are nil when absent or malformed in the source.
type Event struct {
	ID              string       `json:"id,omitempty"`
	Index           int          `json:"index"`
	Period          int          `json:"period"`
	Minute          int          `json:"minute"`
	Second          int          `json:"second"`
	Type            string       `json:"type"`
	Player          string       `json:"player,omitempty"`
	Team            string       `json:"team,omitempty"`
	Location        *Position2D  `json:"location"`
	PassEndLocation *Position2D  `json:"pass_end_location"`
	PassOutcome     string       `json:"pass_outcome,omitempty"`
	PassLength      float64      `json:"pass_length,omitempty"`
	PassCategory    PassCategory `json:"pass_category,omitempty"`
}

// IsPass reports whether the event is a pass.
func (e Event) IsPass() bool {
	return e.Type == EventTypePass
}

// IsComplete reports whether a pass reached its target.
func (e Event) IsComplete() bool {
	return e.PassOutcome == ""
}

// EventTable is the tabular event feed: the columns the source carried plus its rows.
type EventTable struct {
	Columns []string `json:"columns"`
	Rows    []Event  `json:"rows"`
}

// HasColumn reports whether the source carried the named column.
func (t EventTable) HasColumn(name string) bool {
	return slices.Contains(t.Columns, name)
}

// WithColumn returns a copy of the column list with name appended if it is not already present.
func (t EventTable) WithColumn(name string) []string {
	cols := slices.Clone(t.Columns)
	if !slices.Contains(cols, name) {
		cols = append(cols, name)
	}
	return cols
}

// Len returns the number of rows.
func (t EventTable) Len() int {
	return len(t.Rows)
}
