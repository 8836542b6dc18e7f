package loghandler

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

const timeFormat = "2006/01/02 15:04:05"

const tagKey = "tag"

// CompactHandler writes one-line logs: timestamp, level for warnings and
// errors, an optional [tag] prefix taken from the "tag" attribute, the
// message, then the remaining key=value attributes.
type CompactHandler struct {
	mu     sync.Mutex
	w      io.Writer
	level  slog.Level
	preset []slog.Attr
}

// NewCompactHandler returns a handler that writes to w with minimum level.
func NewCompactHandler(w io.Writer, level slog.Level) *CompactHandler {
	return &CompactHandler{w: w, level: level}
}

// Enabled reports whether the handler handles records at the given level.
func (h *CompactHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats the record as:
// 2006/01/02 15:04:05 [tag] message key=value ...
// with "WARN"/"ERROR" inserted after the timestamp for those levels.
func (h *CompactHandler) Handle(_ context.Context, r slog.Record) error {
	var tag string
	attrs := make([]slog.Attr, 0, r.NumAttrs()+len(h.preset))
	attrs = append(attrs, h.preset...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})

	buf := make([]byte, 0, 256)
	buf = append(buf, r.Time.Format(timeFormat)...)
	if r.Level >= slog.LevelWarn {
		buf = append(buf, ' ')
		buf = append(buf, r.Level.String()...)
	}
	buf = append(buf, ' ')
	for _, a := range attrs {
		if a.Key == tagKey && a.Value.Kind() == slog.KindString {
			tag = a.Value.String()
			break
		}
	}
	if tag != "" {
		buf = append(buf, '[')
		buf = append(buf, tag...)
		buf = append(buf, "] "...)
	}
	buf = append(buf, r.Message...)
	for _, a := range attrs {
		if a.Key == tagKey {
			continue
		}
		buf = append(buf, ' ')
		buf = append(buf, a.Key...)
		buf = append(buf, '=')
		buf = append(buf, a.Value.String()...)
	}
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf)
	return err
}

// WithAttrs returns a handler that includes attrs in every record.
func (h *CompactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.preset)+len(attrs))
	merged = append(merged, h.preset...)
	merged = append(merged, attrs...)
	return &CompactHandler{w: h.w, level: h.level, preset: merged}
}

// WithGroup returns the handler unchanged; compact output has no groups.
func (h *CompactHandler) WithGroup(name string) slog.Handler {
	return h
}
