package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
)

// BufferedLogHandler captures log records in memory as JSON lines. Tests use
// it to assert on what the pipeline reported without touching stderr.
type BufferedLogHandler struct {
	level    slog.Leveler
	mu       *sync.Mutex
	buffer   *bytes.Buffer
	preAttrs []slog.Attr
}

type logEntry struct {
	Level   string   `json:"level"`
	Message string   `json:"msg"`
	Attrs   []string `json:"attrs,omitempty"`
}

// NewBufferedLogHandler creates an empty handler. A nil opts captures every level.
func NewBufferedLogHandler(opts *slog.HandlerOptions) *BufferedLogHandler {
	h := &BufferedLogHandler{mu: &sync.Mutex{}, buffer: &bytes.Buffer{}}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

// Enabled implements slog.Handler.
func (h *BufferedLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	if h.level == nil {
		return true
	}
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *BufferedLogHandler) Handle(_ context.Context, r slog.Record) error {
	entry := logEntry{Level: r.Level.String(), Message: r.Message}
	for _, a := range h.preAttrs {
		entry.Attrs = append(entry.Attrs, a.String())
	}
	r.Attrs(func(a slog.Attr) bool {
		entry.Attrs = append(entry.Attrs, a.String())
		return true
	})

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.buffer.Write(data)
	h.buffer.WriteByte('\n')
	return nil
}

// WithAttrs implements slog.Handler. The returned handler shares the buffer.
func (h *BufferedLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.preAttrs)+len(attrs))
	merged = append(merged, h.preAttrs...)
	merged = append(merged, attrs...)
	return &BufferedLogHandler{level: h.level, mu: h.mu, buffer: h.buffer, preAttrs: merged}
}

// WithGroup implements slog.Handler. Groups are flattened.
func (h *BufferedLogHandler) WithGroup(string) slog.Handler { return h }

// String returns everything captured so far.
func (h *BufferedLogHandler) String() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.buffer.String()
}

// Contains reports whether any captured line contains s.
func (h *BufferedLogHandler) Contains(s string) bool {
	return strings.Contains(h.String(), s)
}
