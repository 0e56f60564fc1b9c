package logging

import (
	"context"
	"log/slog"
)

// Run identifies what a passmap invocation is working on.
// Empty fields are left out of log records.
type Run struct {
	Command string
	Match   string
	Player  string
}

type runKey struct{}

// WithRun returns a context whose log records carry r's fields.
// Fields already set on the parent's Run are kept unless r overrides them.
func WithRun(ctx context.Context, r Run) context.Context {
	prev := RunFrom(ctx)
	if r.Command == "" {
		r.Command = prev.Command
	}
	if r.Match == "" {
		r.Match = prev.Match
	}
	if r.Player == "" {
		r.Player = prev.Player
	}
	return context.WithValue(ctx, runKey{}, r)
}

// RunFrom returns the Run stored by WithRun, or the zero Run.
func RunFrom(ctx context.Context) Run {
	if ctx == nil {
		return Run{}
	}
	r, _ := ctx.Value(runKey{}).(Run)
	return r
}

func (r Run) attrs() []slog.Attr {
	var out []slog.Attr
	if r.Command != "" {
		out = append(out, slog.String("command", r.Command))
	}
	if r.Match != "" {
		out = append(out, slog.String("match", r.Match))
	}
	if r.Player != "" {
		out = append(out, slog.String("player", r.Player))
	}
	return out
}

// runHandler stamps the Run found in the record's context onto the record.
// Records logged without a context (logger.Info rather than InfoContext) fall
// back to base, the Run known when logging was set up.
type runHandler struct {
	next slog.Handler
	base Run
}

func (h *runHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *runHandler) Handle(ctx context.Context, r slog.Record) error {
	run := h.base
	if ctx != nil {
		if cr, ok := ctx.Value(runKey{}).(Run); ok {
			run = cr
		}
	}
	if attrs := run.attrs(); len(attrs) > 0 {
		r = r.Clone()
		r.AddAttrs(attrs...)
	}
	return h.next.Handle(ctx, r)
}

func (h *runHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &runHandler{next: h.next.WithAttrs(attrs), base: h.base}
}

func (h *runHandler) WithGroup(name string) slog.Handler {
	return &runHandler{next: h.next.WithGroup(name), base: h.base}
}
