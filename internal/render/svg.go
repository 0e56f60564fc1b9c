package render

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/pitchlab/passmap/pkg/core"
)

// Option configures how a pass map is drawn.
type Option func(*options)

type options struct {
	scale      float64
	lineColor  string
	background string
}

func defaultOptions() options {
	return options{
		scale:      8,
		lineColor:  "black",
		background: "white",
	}
}

// WithScale sets the number of pixels per pitch unit.
func WithScale(px float64) Option {
	return func(o *options) {
		if px > 0 {
			o.scale = px
		}
	}
}

// WithLineColor sets the color of the pitch markings and text.
func WithLineColor(color string) Option {
	return func(o *options) {
		if color != "" {
			o.lineColor = color
		}
	}
}

// WithBackground sets the fill behind the pitch.
func WithBackground(color string) Option {
	return func(o *options) {
		if color != "" {
			o.background = color
		}
	}
}

// Drawing sizes in pitch units.
const (
	padding        = 4.0
	titleSpace     = 8.0
	markingWidth   = 0.3
	arrowWidth     = 0.5
	originRadius   = 0.6
	titleFontSize  = 4.0
	legendFontSize = 2.0
)

// Document renders m as a standalone SVG document.
func Document(m PassMap, opts ...Option) templ.Component {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		minX, minY := -padding, -(padding + titleSpace)
		width := PitchLength + 2*padding
		height := PitchWidth + 2*padding + titleSpace

		sw := &svgWriter{w: w}
		sw.printf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="%s %s %s %s">`,
			num(width*o.scale), num(height*o.scale), num(minX), num(minY), num(width), num(height))
		sw.printf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`,
			num(minX), num(minY), num(width), num(height), attr(o.background))
		if sw.err != nil {
			return sw.err
		}

		parts := []templ.Component{
			arrowHeads(m.Colors),
			pitch(o.lineColor),
			passes(m.Arrows, m.Markers),
			heading(m.Title, m.Annotations, o.lineColor),
		}
		for _, part := range parts {
			if err := part.Render(ctx, w); err != nil {
				return err
			}
		}

		sw.printf(`</svg>`)
		return sw.err
	})
}

// arrowHeads defines one arrowhead marker per length bucket.
func arrowHeads(colors core.ColorMap) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		sw := &svgWriter{w: w}
		sw.printf(`<defs>`)
		for _, b := range []core.LengthBucket{core.BucketShort, core.BucketMedium, core.BucketLong} {
			sw.printf(`<marker id="%s" viewBox="0 0 10 10" refX="8" refY="5" markerWidth="4" markerHeight="4" orient="auto-start-reverse">`, markerID(b))
			sw.printf(`<path d="M0,1 L9,5 L0,9" fill="none" stroke="%s" stroke-width="2"/>`, attr(colors.For(b)))
			sw.printf(`</marker>`)
		}
		sw.printf(`</defs>`)
		return sw.err
	})
}

func pitch(color string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		mk := pitchMarkings()
		sw := &svgWriter{w: w}
		sw.printf(`<g class="pitch" fill="none" stroke="%s" stroke-width="%s">`, attr(color), num(markingWidth))
		for _, r := range mk.rects {
			sw.printf(`<rect x="%s" y="%s" width="%s" height="%s"/>`, num(r.x), num(r.y), num(r.w), num(r.h))
		}
		for _, l := range mk.lines {
			sw.printf(`<line x1="%s" y1="%s" x2="%s" y2="%s"/>`, num(l.x1), num(l.y1), num(l.x2), num(l.y2))
		}
		for _, c := range mk.circles {
			if c.filled {
				sw.printf(`<circle cx="%s" cy="%s" r="%s" fill="%s" stroke="none"/>`, num(c.cx), num(c.cy), num(c.r), attr(color))
				continue
			}
			sw.printf(`<circle cx="%s" cy="%s" r="%s"/>`, num(c.cx), num(c.cy), num(c.r))
		}
		for _, a := range mk.arcs {
			sw.printf(`<path d="M%s,%s A%s,%s 0 0,%d %s,%s"/>`,
				num(a.x1), num(a.y1), num(a.r), num(a.r), a.sweep, num(a.x2), num(a.y2))
		}
		sw.printf(`</g>`)
		return sw.err
	})
}

func passes(arrows []Arrow, markers []Marker) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		sw := &svgWriter{w: w}
		sw.printf(`<g class="passes" stroke-linecap="round">`)
		for _, a := range arrows {
			sw.printf(`<line class="pass %s" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" marker-end="url(#%s)"/>`,
				a.Bucket, num(a.From.X), num(a.From.Y), num(a.To.X), num(a.To.Y), attr(a.Color), num(arrowWidth), markerID(a.Bucket))
		}
		for _, m := range markers {
			sw.printf(`<circle class="origin" cx="%s" cy="%s" r="%s" fill="%s"/>`,
				num(m.At.X), num(m.At.Y), num(originRadius), attr(m.Color))
		}
		sw.printf(`</g>`)
		return sw.err
	})
}

func heading(title string, notes []Annotation, color string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		sw := &svgWriter{w: w}
		sw.printf(`<g class="labels" font-family="sans-serif" fill="%s">`, attr(color))
		sw.printf(`<text class="title" x="%s" y="%s" font-size="%s" text-anchor="middle">%s</text>`,
			num(PitchLength/2), num(-padding), num(titleFontSize), templ.EscapeString(title))
		for _, n := range notes {
			sw.printf(`<text class="annotation" x="%s" y="%s" font-size="%s" text-anchor="start" dominant-baseline="middle">%s</text>`,
				num(n.At.X), num(n.At.Y), num(legendFontSize), templ.EscapeString(n.Text))
		}
		sw.printf(`</g>`)
		return sw.err
	})
}

func markerID(b core.LengthBucket) string {
	return "arrow-" + string(b)
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func attr(s string) string {
	return templ.EscapeString(s)
}

// svgWriter keeps the first write error so a component can check it once at the end.
type svgWriter struct {
	w   io.Writer
	err error
}

func (s *svgWriter) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}
