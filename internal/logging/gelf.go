package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
)

// GELFFacility is reported on every message shipped to Graylog.
const GELFFacility = "passmap"

// MessageWriter sends a single GELF message. *gelf.Writer satisfies it.
type MessageWriter interface {
	WriteMessage(m *gelf.Message) error
}

// NewGELFWriter dials a Graylog UDP input.
func NewGELFWriter(address string) (*gelf.Writer, error) {
	w, err := gelf.NewWriter(address)
	if err != nil {
		return nil, fmt.Errorf("failed to create graylog writer for %s: %w", address, err)
	}
	w.Facility = GELFFacility
	return w, nil
}

// gelfHandler turns slog records into GELF messages. Attributes become
// additional fields ("_match", "_rows") so Graylog can search on them.
type gelfHandler struct {
	out   MessageWriter
	mu    *sync.Mutex
	level slog.Leveler
	host  string

	attrs  []slog.Attr // already prefixed with the group path
	prefix string
}

func newGELFHandler(out MessageWriter, level slog.Leveler) *gelfHandler {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return &gelfHandler{out: out, mu: &sync.Mutex{}, level: level, host: host}
}

func (h *gelfHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *gelfHandler) Handle(_ context.Context, r slog.Record) error {
	extra := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		addGELFField(extra, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		addGELFField(extra, h.prefix, a)
		return true
	})

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	m := &gelf.Message{
		Version:  "1.1",
		Host:     h.host,
		Short:    r.Message,
		TimeUnix: float64(ts.UnixNano()) / float64(time.Second),
		Level:    gelfLevel(r.Level),
		Facility: GELFFacility,
		Extra:    extra,
	}
	if err, ok := extra["_error"].(string); ok {
		m.Full = r.Message + ": " + err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.out.WriteMessage(m)
}

func (h *gelfHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	h2.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		h2.attrs = append(h2.attrs, a)
	}
	return &h2
}

func (h *gelfHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

// addGELFField flattens groups into dotted keys. GELF reserves "_id".
func addGELFField(extra map[string]any, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := prefix + a.Key
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			addGELFField(extra, key+".", ga)
		}
		return
	}
	key = strings.ReplaceAll(key, " ", "_")
	if key == "id" {
		key = "event_id"
	}
	extra["_"+key] = gelfValue(a.Value)
}

// gelfValue keeps numbers numeric and renders everything else as text.
func gelfValue(v slog.Value) any {
	switch v.Kind() {
	case slog.KindInt64:
		return v.Int64()
	case slog.KindUint64:
		return v.Uint64()
	case slog.KindFloat64:
		return v.Float64()
	case slog.KindBool:
		if v.Bool() {
			return 1
		}
		return 0
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339)
	case slog.KindDuration:
		return v.Duration().Seconds()
	default:
		return fmt.Sprint(v.Any())
	}
}

func gelfLevel(l slog.Level) int32 {
	switch {
	case l >= slog.LevelError:
		return gelf.LOG_ERR
	case l >= slog.LevelWarn:
		return gelf.LOG_WARNING
	case l >= slog.LevelInfo:
		return gelf.LOG_INFO
	default:
		return gelf.LOG_DEBUG
	}
}
