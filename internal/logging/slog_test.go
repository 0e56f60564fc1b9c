package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// captureConsole swaps the console writer for a buffer for the duration of the test.
func captureConsole(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := consoleOut
	consoleOut = &buf
	t.Cleanup(func() { consoleOut = orig })
	return &buf
}

func TestSetup_FileOnly_NoConsole(t *testing.T) {
	console := captureConsole(t)

	var fileBuf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&fileBuf, "info", Sinks{})
	m.Logger().Info("hello file")

	assert.Contains(t, fileBuf.String(), "hello file", "log should appear in file")
	assert.Empty(t, console.String(), "nothing should reach the console when file is provided")
}

func TestSetup_NoFile_WritesToConsole(t *testing.T) {
	console := captureConsole(t)

	m := NewSlogManager()
	m.Setup(nil, "info", Sinks{})
	m.Logger().Info("hello console")

	assert.Contains(t, console.String(), "hello console")
}

func TestSetup_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&buf, "debug", Sinks{})

	m.Logger().Debug("debug msg")
	m.Logger().Info("info msg")

	output := buf.String()
	assert.Contains(t, output, "debug msg")
	assert.Contains(t, output, "info msg")
}

func TestSetup_InfoLevel_FiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&buf, "info", Sinks{})

	m.Logger().Debug("should be filtered")
	m.Logger().Info("should appear")

	output := buf.String()
	assert.NotContains(t, output, "should be filtered")
	assert.Contains(t, output, "should appear")
}

func TestSetup_ReplacesLogger(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	m := NewSlogManager()

	m.Setup(&buf1, "info", Sinks{})
	m.Logger().Info("first")

	m.Setup(&buf2, "info", Sinks{})
	m.Logger().Info("second")

	assert.Contains(t, buf1.String(), "first")
	assert.NotContains(t, buf1.String(), "second", "old file should not receive new logs")
	assert.Contains(t, buf2.String(), "second")
}

func TestSetup_GraylogSink(t *testing.T) {
	var file bytes.Buffer
	gl := &gelfRecorder{}
	m := NewSlogManager()
	m.Setup(&file, "info", Sinks{Graylog: gl})

	m.Logger().Info("classified", "passes", 12)
	m.Logger().Debug("below level")

	require.Len(t, gl.messages, 1)
	assert.Equal(t, "classified", gl.messages[0].Short)
	assert.Equal(t, int64(12), gl.messages[0].Extra["_passes"])
	assert.Contains(t, file.String(), "passes=12")
}

func TestSetup_RunWithoutContext(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	m.SetRun(Run{Command: "render"})
	m.Setup(&buf, "info", Sinks{})

	m.Logger().Info("drawing")
	assert.Contains(t, buf.String(), "command=render")
	assert.NotContains(t, buf.String(), "match=")
}

func TestSetup_RunFromContext(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	m.SetRun(Run{Command: "render"})
	m.Setup(&buf, "info", Sinks{})

	ctx := WithRun(context.Background(), Run{Command: "render", Match: "3788741"})
	m.Logger().InfoContext(WithRun(ctx, Run{Player: "Xavi"}), "drawing")

	out := buf.String()
	assert.Contains(t, out, "command=render")
	assert.Contains(t, out, "match=3788741")
	assert.Contains(t, out, "player=Xavi")
}

func TestSetup_RunReachesGraylog(t *testing.T) {
	gl := &gelfRecorder{}
	m := NewSlogManager()
	m.Setup(&bytes.Buffer{}, "info", Sinks{Graylog: gl})

	ctx := WithRun(context.Background(), Run{Command: "classify", Match: "15946"})
	m.Logger().With("rows", 3).InfoContext(ctx, "classified")

	require.Len(t, gl.messages, 1)
	extra := gl.messages[0].Extra
	assert.Equal(t, "classify", extra["_command"])
	assert.Equal(t, "15946", extra["_match"])
	assert.Equal(t, int64(3), extra["_rows"])
}

func TestLogger_DefaultBeforeSetup(t *testing.T) {
	m := NewSlogManager()
	assert.Equal(t, slog.Default(), m.Logger())
}

func TestFlush_NilProvider(t *testing.T) {
	m := NewSlogManager()
	assert.NoError(t, m.Flush(context.Background()))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"invalid", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestFanout_FansOut(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	h1 := slog.NewTextHandler(&buf1, &slog.HandlerOptions{Level: slog.LevelInfo})
	h2 := slog.NewTextHandler(&buf2, &slog.HandlerOptions{Level: slog.LevelInfo})

	slog.New(fanout{h1, h2}).Info("fanned out")

	assert.Contains(t, buf1.String(), "fanned out")
	assert.Contains(t, buf2.String(), "fanned out")
}

func TestFanout_Enabled(t *testing.T) {
	infoHandler := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo})
	debugHandler := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug})

	infoOnly := fanout{infoHandler}
	assert.False(t, infoOnly.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, infoOnly.Enabled(context.Background(), slog.LevelInfo))

	both := fanout{infoHandler, debugHandler}
	assert.True(t, both.Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, fanout{}.Enabled(context.Background(), slog.LevelError))
}

func TestFanout_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	logger := slog.New(fanout{h}.WithAttrs([]slog.Attr{slog.String("component", "classify")}).WithGroup("pass"))
	logger.Info("labeled", "category", "progressive")

	assert.Contains(t, buf.String(), "component=classify")
	assert.Contains(t, buf.String(), "pass.category=progressive")
}

// errorHandler is a slog.Handler that always returns an error from Handle.
type errorHandler struct {
	slog.Handler
}

func (h *errorHandler) Handle(_ context.Context, _ slog.Record) error {
	return errors.New("handler error")
}

func (h *errorHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func TestFanout_HandleErrorReachesOthers(t *testing.T) {
	var buf bytes.Buffer
	spy := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	f := fanout{&errorHandler{}, spy}
	r := slog.NewRecord(time.Now(), slog.LevelInfo, "should reach spy", 0)
	err := f.Handle(context.Background(), r)

	assert.EqualError(t, err, "handler error")
	assert.Contains(t, buf.String(), "should reach spy")
}

func TestFlush_WithProvider(t *testing.T) {
	provider := sdklog.NewLoggerProvider()
	m := NewSlogManager()

	var buf bytes.Buffer
	m.Setup(&buf, "info", Sinks{OTel: provider})

	assert.NoError(t, m.Flush(context.Background()))
}

func TestSetup_WithOTelProvider(t *testing.T) {
	provider := sdklog.NewLoggerProvider()

	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&buf, "info", Sinks{OTel: provider})

	m.Logger().Info("otel integrated")
	assert.Contains(t, buf.String(), "otel integrated")
}
