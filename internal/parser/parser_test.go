package parser

import (
	"log/slog"
	"testing"

	"github.com/pitchlab/passmap/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser() *Parser {
	return NewParser(slog.Default())
}

func TestNewParser(t *testing.T) {
	p := newTestParser()
	require.NotNil(t, p)

	p = NewParser(nil)
	require.NotNil(t, p)
	assert.NotNil(t, p.logger)
}

func TestParseIntFromFloat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"integer", "32", 32, false},
		{"zero", "0", 0, false},
		{"float with decimals", "32.00", 32, false},
		{"float with trailing zero", "2.0", 2, false},
		{"negative", "-1", -1, false},
		{"fractional rejects", "10.99", 0, true},
		{"empty string", "", 0, true},
		{"non-numeric", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIntFromFloat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestIsMissing(t *testing.T) {
	for _, s := range []string{"", "  ", "NaN", "nan", "None", "null", "<NA>"} {
		assert.True(t, isMissing(s), "%q", s)
	}
	for _, s := range []string{"0", "Pass", "[1, 2]"} {
		assert.False(t, isMissing(s), "%q", s)
	}
}

func TestColumnSet_FirstSeenOrder(t *testing.T) {
	c := newColumnSet()
	c.add("type")
	c.add("location")
	c.add("type")
	c.add("pass_end_location")
	assert.Equal(t, []string{"type", "location", "pass_end_location"}, c.list())
}

func TestFillPassLength(t *testing.T) {
	p := newTestParser()

	e := core.Event{
		Type:            core.EventTypePass,
		Location:        &core.Position2D{X: 10, Y: 10},
		PassEndLocation: &core.Position2D{X: 13, Y: 14},
	}
	p.fillPassLength(&e)
	assert.InDelta(t, 5.0, e.PassLength, 1e-9)

	// Feed-provided length wins.
	e.PassLength = 7
	p.fillPassLength(&e)
	assert.Equal(t, 7.0, e.PassLength)

	shot := core.Event{
		Type:            "Shot",
		Location:        &core.Position2D{X: 10, Y: 10},
		PassEndLocation: &core.Position2D{X: 13, Y: 14},
	}
	p.fillPassLength(&shot)
	assert.Zero(t, shot.PassLength)

	noEnd := core.Event{Type: core.EventTypePass, Location: &core.Position2D{X: 1, Y: 1}}
	p.fillPassLength(&noEnd)
	assert.Zero(t, noEnd.PassLength)
}
