package parser

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pitchlab/passmap/internal/geo"
	"github.com/pitchlab/passmap/pkg/core"
)

// namedRef is the {"id": .., "name": ..} object the event feed uses for types, teams and players.
type namedRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type rawPass struct {
	EndLocation any       `json:"end_location"`
	Length      *float64  `json:"length"`
	Outcome     *namedRef `json:"outcome"`
}

type rawEvent struct {
	ID       string    `json:"id"`
	Index    int       `json:"index"`
	Period   int       `json:"period"`
	Minute   int       `json:"minute"`
	Second   int       `json:"second"`
	Type     *namedRef `json:"type"`
	Team     *namedRef `json:"team"`
	Player   *namedRef `json:"player"`
	Location any       `json:"location"`
	Pass     *rawPass  `json:"pass"`
}

// ParseEventsJSON parses a match's event list in the nested open-data JSON layout.
// The returned table's columns are those carried by at least one event, flattened the
// way the dataframe tooling names them (pass.end_location becomes pass_end_location).
func (p *Parser) ParseEventsJSON(r io.Reader) (core.EventTable, error) {
	var raw []rawEvent
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return core.EventTable{}, fmt.Errorf("error unmarshalling events: %w", err)
	}

	cols := newColumnSet()
	rows := make([]core.Event, 0, len(raw))
	for i, re := range raw {
		e := core.Event{
			ID:     re.ID,
			Index:  re.Index,
			Period: re.Period,
			Minute: re.Minute,
			Second: re.Second,
		}
		cols.add(core.ColumnID)
		cols.add(core.ColumnIndex)
		cols.add(core.ColumnPeriod)
		cols.add(core.ColumnMinute)
		cols.add(core.ColumnSecond)

		if re.Type != nil {
			e.Type = re.Type.Name
			cols.add(core.ColumnType)
		}
		if re.Player != nil {
			e.Player = re.Player.Name
			cols.add(core.ColumnPlayer)
		}
		if re.Team != nil {
			e.Team = re.Team.Name
			cols.add(core.ColumnTeam)
		}
		if re.Location != nil {
			cols.add(core.ColumnLocation)
			e.Location = p.position(re.Location, i, core.ColumnLocation)
		}

		if re.Pass != nil {
			if re.Pass.EndLocation != nil {
				cols.add(core.ColumnPassEndLocation)
				e.PassEndLocation = p.position(re.Pass.EndLocation, i, core.ColumnPassEndLocation)
			}
			if re.Pass.Length != nil {
				cols.add(core.ColumnPassLength)
				e.PassLength = *re.Pass.Length
			}
			if re.Pass.Outcome != nil {
				cols.add(core.ColumnPassOutcome)
				e.PassOutcome = re.Pass.Outcome.Name
			}
		}

		p.fillPassLength(&e)
		rows = append(rows, e)
	}

	p.logger.Debug("Parsed event feed", "events", len(rows), "columns", len(cols.list()))

	return core.EventTable{Columns: cols.list(), Rows: rows}, nil
}

// position validates a decoded coordinate; malformed values become nil.
func (p *Parser) position(v any, row int, column string) *core.Position2D {
	pos, err := geo.Position2DFromAny(v)
	if err != nil {
		p.logger.Debug("Dropping malformed coordinate", "row", row, "column", column, "error", err)
		return nil
	}
	return &pos
}
