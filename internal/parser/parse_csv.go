package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pitchlab/passmap/internal/geo"
	"github.com/pitchlab/passmap/internal/util"
	"github.com/pitchlab/passmap/pkg/core"
)

// ParseEventsCSV parses a flattened event table. The header row defines the columns;
// unrecognized columns are kept in the column list but otherwise ignored.
// Coordinates are the string form of a pair, "[x, y]" or "x,y".
func (p *Parser) ParseEventsCSV(r io.Reader) (core.EventTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return core.EventTable{}, errors.New("error reading header: empty input")
		}
		return core.EventTable{}, fmt.Errorf("error reading header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(util.TrimQuotes(h))
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows []core.Event
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return core.EventTable{}, fmt.Errorf("error reading line %d: %w", line, err)
		}

		e, err := p.parseRecord(header, record, line)
		if err != nil {
			return core.EventTable{}, err
		}
		rows = append(rows, e)
	}

	p.logger.Debug("Parsed flattened event table", "events", len(rows), "columns", len(header))

	return core.EventTable{Columns: header, Rows: rows}, nil
}

func (p *Parser) parseRecord(header, record []string, line int) (core.Event, error) {
	var e core.Event
	for i, col := range header {
		if i >= len(record) {
			break
		}
		cell := util.TrimQuotes(strings.TrimSpace(record[i]))
		if isMissing(cell) {
			continue
		}

		var err error
		switch col {
		case core.ColumnID:
			e.ID = cell
		case core.ColumnIndex:
			e.Index, err = parseIntFromFloat(cell)
		case core.ColumnPeriod:
			e.Period, err = parseIntFromFloat(cell)
		case core.ColumnMinute:
			e.Minute, err = parseIntFromFloat(cell)
		case core.ColumnSecond:
			e.Second, err = parseIntFromFloat(cell)
		case core.ColumnType:
			e.Type = cell
		case core.ColumnPlayer:
			e.Player = cell
		case core.ColumnTeam:
			e.Team = cell
		case core.ColumnLocation:
			e.Location = p.positionString(cell, line, col)
		case core.ColumnPassEndLocation:
			e.PassEndLocation = p.positionString(cell, line, col)
		case core.ColumnPassOutcome:
			e.PassOutcome = cell
		case core.ColumnPassLength:
			e.PassLength, err = strconv.ParseFloat(cell, 64)
		case core.ColumnPassCategory:
			e.PassCategory, err = core.ParsePassCategory(cell)
		}
		if err != nil {
			return core.Event{}, fmt.Errorf("line %d: error parsing %s: %w", line, col, err)
		}
	}

	p.fillPassLength(&e)
	return e, nil
}

func (p *Parser) positionString(cell string, line int, column string) *core.Position2D {
	pos, err := geo.Position2DFromString(cell)
	if err != nil {
		p.logger.Debug("Dropping malformed coordinate", "line", line, "column", column, "error", err)
		return nil
	}
	return &pos
}
