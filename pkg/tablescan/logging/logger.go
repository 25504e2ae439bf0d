// Package logging holds the *slog.Logger shared by the tablescan packages.
package logging

import (
	"log/slog"
	"sync/atomic"
)

// logger is nil until SetLogger is called; Logger then falls back to a
// discard logger so library code never writes unless asked to.
var logger atomic.Pointer[slog.Logger]

// SetLogger configures the package-level logger. Pass nil to silence output.
//
// SetLogger is safe for concurrent use.
//
//	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
func SetLogger(sl *slog.Logger) {
	if sl == nil {
		sl = slog.New(slog.DiscardHandler)
	}
	logger.Store(sl)
}

// Logger returns the package-level logger, or a discard logger if none is set.
func Logger() *slog.Logger {
	l := logger.Load()
	if l == nil {
		l = slog.New(slog.DiscardHandler)
		logger.Store(l)
	}
	return l
}

// For returns the package logger tagged with a component name, so records
// from the grid scanners and the OCR glue can be told apart.
func For(component string) *slog.Logger {
	return Logger().With("component", component)
}
