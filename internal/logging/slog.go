package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// consoleOut receives log lines when no log file is configured.
// Stdout is reserved for command output such as rendered SVG.
var consoleOut io.Writer = os.Stderr

// Sinks lists where passmap log records go besides the text log.
// Nil fields are skipped.
type Sinks struct {
	Graylog MessageWriter
	OTel    *sdklog.LoggerProvider
}

// SlogManager manages slog-based logging with optional Graylog and OTel sinks.
type SlogManager struct {
	logger *slog.Logger

	// OTel provider for flushing
	logProvider *sdklog.LoggerProvider

	run Run
}

// NewSlogManager creates a new slog-based logging manager.
func NewSlogManager() *SlogManager {
	return &SlogManager{}
}

// SetRun sets the Run stamped on records logged without a context.
// Takes effect on the next Setup.
func (m *SlogManager) SetRun(r Run) {
	m.run = r
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup initializes the logging system. Text records go to file, or stderr
// when file is nil; every configured sink receives the same records.
func (m *SlogManager) Setup(file io.Writer, level string, sinks Sinks) {
	lvl := parseLevel(level)
	m.logProvider = sinks.OTel

	handlerOpts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}

	if file == nil {
		file = consoleOut
	}
	handlers := fanout{slog.NewTextHandler(file, handlerOpts)}
	if sinks.Graylog != nil {
		handlers = append(handlers, newGELFHandler(sinks.Graylog, lvl))
	}
	if sinks.OTel != nil {
		handlers = append(handlers, otelslog.NewHandler("passmap", otelslog.WithLoggerProvider(sinks.OTel)))
	}

	m.logger = slog.New(&runHandler{next: handlers, base: m.run})
	m.logger.Debug("Logging initialized", "level", level, "sinks", len(handlers))
}

// Logger returns the configured slog.Logger.
func (m *SlogManager) Logger() *slog.Logger {
	if m.logger == nil {
		return slog.Default()
	}
	return m.logger
}

// Flush forces a flush of OTel logs if available.
func (m *SlogManager) Flush(ctx context.Context) error {
	if m.logProvider != nil {
		return m.logProvider.ForceFlush(ctx)
	}
	return nil
}

// fanout hands each record to every handler enabled for its level.
// A failing sink does not stop the others; their errors are joined.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	if name == "" {
		return f
	}
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
