// pkg/core/types.go
package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Position2D represents a pitch coordinate in StatsBomb units.
// X runs from the team's own goal line (0) to the opponent's (120), Y across the pitch (0-80).
type Position2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Valid reports whether both components are finite numbers.
func (p Position2D) Valid() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// MarshalJSON encodes the position as the [x, y] pair used by event feeds.
func (p Position2D) MarshalJSON() ([]byte, error) {
	return marshalPair(p.X, p.Y)
}

// PositionFromValues builds a position from decoded JSON values.
// Exactly two finite numbers are accepted; null or non-numeric components are errors.
func PositionFromValues(vals []any) (Position2D, error) {
	if len(vals) != 2 {
		return Position2D{}, fmt.Errorf("position must have 2 components, got %d", len(vals))
	}
	var xy [2]float64
	for i, v := range vals {
		f, ok := v.(float64)
		if !ok {
			return Position2D{}, fmt.Errorf("position component %d is %v", i, v)
		}
		xy[i] = f
	}
	p := Position2D{X: xy[0], Y: xy[1]}
	if !p.Valid() {
		return Position2D{}, fmt.Errorf("position %v is not finite", xy)
	}
	return p, nil
}

// UnmarshalJSON accepts either the [x, y] pair or the {"x":..,"y":..} object form.
// A JSON null leaves the position untouched.
func (p *Position2D) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	var pos Position2D
	var err error
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		pos, err = PositionFromValues(t)
	case map[string]any:
		pos, err = PositionFromValues([]any{t["x"], t["y"]})
	default:
		err = fmt.Errorf("position must be an array or object, got %T", v)
	}
	if err != nil {
		return err
	}
	*p = pos
	return nil
}

func marshalPair(x, y float64) ([]byte, error) {
	if !(Position2D{X: x, Y: y}).Valid() {
		return []byte("null"), nil
	}
	b := make([]byte, 0, 24)
	b = append(b, '[')
	b = strconv.AppendFloat(b, x, 'f', -1, 64)
	b = append(b, ',')
	b = strconv.AppendFloat(b, y, 'f', -1, 64)
	b = append(b, ']')
	return b, nil
}

// PlayerStats is the per-player aggregate looked up by the pass map renderer.
type PlayerStats struct {
	Player               string  `json:"player_name"`
	Team                 string  `json:"team,omitempty"`
	PassCount            int     `json:"pass_count"`
	CompletedCount       int     `json:"completed_count"`
	ProgressivePassCount int     `json:"progressive_pass_count"`
	CompletionPercentage float64 `json:"completion_percentage"`
}
