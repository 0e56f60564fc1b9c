package parser

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pitchlab/passmap/internal/geo"
	"github.com/pitchlab/passmap/pkg/core"
)

// parseIntFromFloat parses a string that may be an integer ("3") or float ("3.0") into int.
// Tables round-tripped through dataframes write integer columns with missing values as floats.
func parseIntFromFloat(s string) (int, error) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return int(v), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int64(f)) {
		return 0, fmt.Errorf("parseIntFromFloat: %q is not a valid integer", s)
	}
	return int(f), nil
}

// Parser converts raw event feeds into core.EventTable values.
// It has zero external dependencies beyond a logger.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new parser with only a logger dependency
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// fillPassLength derives the length of a pass from its coordinates when the feed left it out.
func (p *Parser) fillPassLength(e *core.Event) {
	if !e.IsPass() || e.PassLength != 0 || e.Location == nil || e.PassEndLocation == nil {
		return
	}
	d, err := geo.PassDistance(*e.Location, *e.PassEndLocation)
	if err != nil {
		p.logger.Debug("Cannot derive pass length", "id", e.ID, "error", err)
		return
	}
	e.PassLength = d
}

// isMissing reports whether a flattened cell holds no value.
func isMissing(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nan", "none", "null", "<na>":
		return true
	}
	return false
}

// columnSet accumulates the columns seen while parsing, in first-seen order.
type columnSet struct {
	seen  map[string]bool
	order []string
}

func newColumnSet() *columnSet {
	return &columnSet{seen: map[string]bool{}}
}

func (c *columnSet) add(name string) {
	if c.seen[name] {
		return
	}
	c.seen[name] = true
	c.order = append(c.order, name)
}

func (c *columnSet) list() []string {
	return c.order
}
