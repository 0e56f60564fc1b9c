// Package classify labels pass events by how far they move the ball toward the opponent's goal.
package classify

import (
	"github.com/pitchlab/passmap/internal/geo"
	"github.com/pitchlab/passmap/pkg/core"
)

// OwnHalfEnd is the x value at which a position stops counting as the team's own half.
const OwnHalfEnd = 50

// Forward distances a pass must cover to count as progressive, by zone.
const (
	OwnHalfThreshold      = 30 // start and end in own half
	CrossHalfThreshold    = 15 // start in own half, end in opponent half
	OpponentHalfThreshold = 10 // start in opponent half
)

// IsProgressive reports whether moving the ball from start to end qualifies as progressive.
func IsProgressive(start, end core.Position2D) bool {
	dx := geo.ForwardDistance(start, end)

	switch {
	case start.X < OwnHalfEnd && end.X < OwnHalfEnd:
		return dx >= OwnHalfThreshold
	case start.X < OwnHalfEnd && end.X >= OwnHalfEnd:
		return dx >= CrossHalfThreshold
	case start.X >= OwnHalfEnd:
		return dx >= OpponentHalfThreshold
	}
	return false
}
