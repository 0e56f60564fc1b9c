package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pitchlab/passmap/pkg/core"
)

// PITCH POINTS
// Event feeds deliver coordinates either as JSON arrays ([x, y]) or, once flattened to CSV, as the
// string form of those arrays ("[x, y]"). Both are normalized here so consumers never re-check
// the shape of a coordinate: a Position2D that made it past this package has exactly two finite
// components.

// ErrInvalidCoordinates is returned when the coordinates are invalid
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// Position2DFromString parses a string in the format "x,y" or "[x, y]" into a core.Position2D.
func Position2DFromString(coords string) (core.Position2D, error) {
	s := strings.TrimSpace(coords)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")

	coordsSplit := strings.Split(s, ",")
	if len(coordsSplit) != 2 {
		return core.Position2D{}, fmt.Errorf("%w: %q has %d components", ErrInvalidCoordinates, coords, len(coordsSplit))
	}
	x, err := parseComponent(coordsSplit[0])
	if err != nil {
		return core.Position2D{}, fmt.Errorf("%w: x of %q", ErrInvalidCoordinates, coords)
	}
	y, err := parseComponent(coordsSplit[1])
	if err != nil {
		return core.Position2D{}, fmt.Errorf("%w: y of %q", ErrInvalidCoordinates, coords)
	}
	return core.Position2D{X: x, Y: y}, nil
}

// Position2DFromAny converts a decoded JSON value into a core.Position2D.
// The value must be a two-element array of finite numbers.
func Position2DFromAny(v any) (core.Position2D, error) {
	arr, ok := v.([]any)
	if !ok {
		return core.Position2D{}, fmt.Errorf("%w: expected array, got %T", ErrInvalidCoordinates, v)
	}
	pos, err := core.PositionFromValues(arr)
	if err != nil {
		return core.Position2D{}, fmt.Errorf("%w: %v", ErrInvalidCoordinates, err)
	}
	return pos, nil
}

func parseComponent(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidCoordinates
	}
	return f, nil
}
