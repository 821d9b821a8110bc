// Package applog wires hotwin's slog output: every record goes to the log
// file, and records at or above a threshold are also echoed to the console
// as a single diagnostic line.
package applog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
)

// RecordCallback is invoked for each record at or above the tee threshold.
// group is the accumulated dot-separated slog group name, or "".
type RecordCallback func(record slog.Record, group string)

// TeeHandler wraps a base [slog.Handler] and tees records at or above minLevel
// to a callback. All records are forwarded to the base handler regardless of
// level; only the callback invocation is gated by minLevel.
type TeeHandler struct {
	base     slog.Handler
	callback RecordCallback
	minLevel slog.Level
	group    string
}

// NewTeeHandler creates a TeeHandler that delegates to base and invokes callback
// for every record whose level is >= minLevel. A nil callback is allowed.
func NewTeeHandler(base slog.Handler, minLevel slog.Level, callback RecordCallback) *TeeHandler {
	return &TeeHandler{
		base:     base,
		callback: callback,
		minLevel: minLevel,
	}
}

// Enabled reports whether either side wants records at level.
// Records below the base level still reach the callback when they clear minLevel.
func (h *TeeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.callback != nil && level >= h.minLevel {
		return true
	}
	return h.base.Enabled(ctx, level)
}

// Handle forwards the record to the base handler, then invokes the callback
// if the record's level meets minLevel. The callback runs even when the base
// handler fails; the base error is returned to slog.
func (h *TeeHandler) Handle(ctx context.Context, record slog.Record) error {
	var err error
	if h.base.Enabled(ctx, record.Level) {
		err = h.base.Handle(ctx, record)
	}

	if h.callback != nil && record.Level >= h.minLevel {
		func() {
			defer func() {
				if r := recover(); r != nil {
					// Written to stderr directly: logging here would re-enter this handler.
					fmt.Fprintf(os.Stderr, "[applog] callback panicked: %v\n%s\n", r, debug.Stack())
				}
			}()
			h.callback(record, h.group)
		}()
	}

	return err
}

// WithAttrs returns a new TeeHandler whose base handler has attrs applied.
func (h *TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	return &TeeHandler{
		base:     h.base.WithAttrs(attrs),
		callback: h.callback,
		minLevel: h.minLevel,
		group:    h.group,
	}
}

// WithGroup returns a new TeeHandler whose base handler is wrapped with name.
func (h *TeeHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newGroup := name
	if h.group != "" {
		newGroup = h.group + "." + name
	}

	return &TeeHandler{
		base:     h.base.WithGroup(name),
		callback: h.callback,
		minLevel: h.minLevel,
		group:    newGroup,
	}
}
