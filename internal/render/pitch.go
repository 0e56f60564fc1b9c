package render

import "math"

// StatsBomb pitch dimensions, in pitch units.
const (
	PitchLength = 120.0
	PitchWidth  = 80.0

	penaltyAreaLength = 18.0
	penaltyAreaWidth  = 44.0
	sixYardLength     = 6.0
	sixYardWidth      = 20.0
	penaltySpotX      = 12.0
	centreCircle      = 10.0
	goalWidth         = 8.0
	goalDepth         = 2.0
)

type rect struct{ x, y, w, h float64 }

type line struct{ x1, y1, x2, y2 float64 }

type circle struct {
	cx, cy, r float64
	filled    bool
}

// arc is an SVG elliptical arc with equal radii, from (x1,y1) to (x2,y2).
type arc struct {
	x1, y1, x2, y2, r float64
	sweep             int
}

// markings is the set of lines painted on a pitch.
type markings struct {
	rects   []rect
	lines   []line
	circles []circle
	arcs    []arc
}

func pitchMarkings() markings {
	midY := PitchWidth / 2
	boxY := midY - penaltyAreaWidth/2
	sixY := midY - sixYardWidth/2
	goalY := midY - goalWidth/2

	// the penalty arc meets the box edge where it is centreCircle away from the spot
	arcDX := penaltyAreaLength - penaltySpotX
	arcDY := math.Sqrt(centreCircle*centreCircle - arcDX*arcDX)

	return markings{
		rects: []rect{
			{0, 0, PitchLength, PitchWidth},
			{0, boxY, penaltyAreaLength, penaltyAreaWidth},
			{PitchLength - penaltyAreaLength, boxY, penaltyAreaLength, penaltyAreaWidth},
			{0, sixY, sixYardLength, sixYardWidth},
			{PitchLength - sixYardLength, sixY, sixYardLength, sixYardWidth},
			{-goalDepth, goalY, goalDepth, goalWidth},
			{PitchLength, goalY, goalDepth, goalWidth},
		},
		lines: []line{
			{PitchLength / 2, 0, PitchLength / 2, PitchWidth},
		},
		circles: []circle{
			{cx: PitchLength / 2, cy: midY, r: centreCircle},
			{cx: PitchLength / 2, cy: midY, r: 0.4, filled: true},
			{cx: penaltySpotX, cy: midY, r: 0.4, filled: true},
			{cx: PitchLength - penaltySpotX, cy: midY, r: 0.4, filled: true},
		},
		arcs: []arc{
			{penaltyAreaLength, midY - arcDY, penaltyAreaLength, midY + arcDY, centreCircle, 1},
			{PitchLength - penaltyAreaLength, midY + arcDY, PitchLength - penaltyAreaLength, midY - arcDY, centreCircle, 1},
		},
	}
}
