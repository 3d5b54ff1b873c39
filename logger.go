// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package csg

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record and reports every level as disabled, so
// log calls with no logger installed cost one atomic load.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (d discard) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discard) WithGroup(string) slog.Handler           { return d }

var silent = slog.New(discard{})

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(silent)
}

// SetLogger installs l as the logger for csg and its subpackages
// (gpu, capture, scenefile). nil restores the silent default. It may be
// called while other goroutines are logging.
//
// Levels:
//   - Debug: one line per Sync, upload or capture with record counts and sizes
//   - Info: a GPU store was created
//   - Warn: a resource could not be released cleanly
//
// To see sync traffic on stderr:
//
//	csg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
//	    &slog.HandlerOptions{Level: slog.LevelDebug})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the installed logger. It never returns nil.
func Logger() *slog.Logger {
	return current.Load()
}
