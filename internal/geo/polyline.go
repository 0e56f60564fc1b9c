package geo

import (
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/pitchlab/passmap/pkg/core"
)

// PassLine builds the straight line a pass travels along.
// A pass that starts and ends on the same spot has no line and yields an error.
func PassLine(start, end core.Position2D) (geom.LineString, error) {
	if !start.Valid() {
		return geom.LineString{}, fmt.Errorf("%w: pass start %v", ErrInvalidCoordinates, start)
	}
	if !end.Valid() {
		return geom.LineString{}, fmt.Errorf("%w: pass end %v", ErrInvalidCoordinates, end)
	}

	seq := geom.NewSequence([]float64{start.X, start.Y, end.X, end.Y}, geom.DimXY)
	ls, err := geom.NewLineString(seq)
	if err != nil {
		return geom.LineString{}, fmt.Errorf("building pass line: %w", err)
	}
	return ls, nil
}

// PassDistance returns the straight-line distance between start and end in pitch units.
func PassDistance(start, end core.Position2D) (float64, error) {
	if start == end && start.Valid() {
		return 0, nil
	}
	ls, err := PassLine(start, end)
	if err != nil {
		return 0, err
	}
	return ls.Length(), nil
}

// ForwardDistance returns how far the pass moved toward the opponent's goal.
// Negative values mean the ball went backwards.
func ForwardDistance(start, end core.Position2D) float64 {
	return end.X - start.X
}
