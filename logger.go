// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tricolor

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/tricolor/pipeline"
	"github.com/gogpu/tricolor/surface"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. SetLogger may run concurrently with
// logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

func slogger() *slog.Logger { return loggerPtr.Load() }

// SetLogger configures the logger for tricolor and its surface and
// pipeline packages. By default nothing is logged. Pass nil to disable
// logging again.
//
// Log levels used:
//   - [slog.LevelDebug]: per-frame diagnostics (suboptimal frames, zero-size resizes)
//   - [slog.LevelInfo]: lifecycle (surface configured, variant switched)
//   - [slog.LevelWarn]: non-fatal issues (surface reconfigured, wait idle failures)
//
// Example:
//
//	tricolor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	surface.SetLogger(l)
	pipeline.SetLogger(l)
}

// Logger returns the current logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
