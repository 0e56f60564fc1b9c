// Package render draws pass maps: one arrow per completed pass on a StatsBomb pitch,
// colored by pass length and annotated with the player's aggregate figures.
package render

import (
	"context"
	"fmt"
	"io"

	"github.com/pitchlab/passmap/internal/stats"
	"github.com/pitchlab/passmap/internal/util"
	"github.com/pitchlab/passmap/pkg/core"
)

// Length bucket boundaries in pitch units. Both are inclusive upper bounds.
const (
	ShortPassMax  = 5
	MediumPassMax = 15
)

// BucketFor returns the length bucket of a pass.
// A NaN length matches neither bound and lands in the long bucket.
func BucketFor(length float64) core.LengthBucket {
	if length <= ShortPassMax {
		return core.BucketShort
	} else if length > ShortPassMax && length <= MediumPassMax {
		return core.BucketMedium
	}
	return core.BucketLong
}

// Arrow is a pass drawn from its origin to its destination.
type Arrow struct {
	From   core.Position2D
	To     core.Position2D
	Bucket core.LengthBucket
	Color  string
}

// Marker is the dot drawn at the origin of a pass.
type Marker struct {
	At    core.Position2D
	Color string
}

// Annotation is text placed at a pitch position.
type Annotation struct {
	At   core.Position2D
	Text string
}

// Skipped counts the rows left off the map.
type Skipped struct {
	Incomplete int
	Malformed  int
}

// PassMap is everything drawn for one player, in pitch coordinates.
type PassMap struct {
	Title       string
	Arrows      []Arrow
	Markers     []Marker
	Annotations []Annotation
	Colors      core.ColorMap
	Skipped     Skipped
}

// Title returns the heading used for a player's map.
func Title(player string) string {
	return fmt.Sprintf("%s's Progressive Passes", player)
}

// BuildPassMap lays out the map for player without drawing it.
// Incomplete passes and rows with an absent or non-finite coordinate are skipped.
func BuildPassMap(passes core.EventTable, player core.PlayerStats, colors core.ColorMap) (PassMap, error) {
	if err := colors.Validate(); err != nil {
		return PassMap{}, err
	}

	m := PassMap{
		Title:  Title(player.Player),
		Colors: colors,
		Annotations: []Annotation{
			{At: core.Position2D{X: 1, Y: 10}, Text: fmt.Sprintf("Prog Pass Count: %d", player.ProgressivePassCount)},
			{At: core.Position2D{X: 1, Y: 5}, Text: "Completion %: " + util.FormatPercentage(player.CompletionPercentage)},
		},
	}

	for _, row := range passes.Rows {
		if row.PassOutcome == core.PassOutcomeIncomplete {
			m.Skipped.Incomplete++
			continue
		}
		if !drawable(row.Location) || !drawable(row.PassEndLocation) {
			m.Skipped.Malformed++
			continue
		}

		bucket := BucketFor(row.PassLength)
		color := colors.For(bucket)
		m.Arrows = append(m.Arrows, Arrow{
			From:   *row.Location,
			To:     *row.PassEndLocation,
			Bucket: bucket,
			Color:  color,
		})
		m.Markers = append(m.Markers, Marker{At: *row.Location, Color: color})
	}
	return m, nil
}

func drawable(p *core.Position2D) bool {
	return p != nil && p.Valid()
}

// PlotProgPassMap draws player's pass map to w as an SVG document.
// The player must have a row in aggregates; otherwise stats.ErrPlayerNotFound is returned
// and nothing is written.
func PlotProgPassMap(
	ctx context.Context,
	w io.Writer,
	passes core.EventTable,
	aggregates stats.Table,
	colors core.ColorMap,
	playerName string,
	opts ...Option,
) error {
	player, err := aggregates.Find(playerName)
	if err != nil {
		return err
	}

	m, err := BuildPassMap(passes, player, colors)
	if err != nil {
		return err
	}

	return Document(m, opts...).Render(ctx, w)
}
