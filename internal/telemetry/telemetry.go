// Package telemetry wires up structured logging for the runtime, grounded
// on the teacher's env-gated debug prints (app.go: TUI_FULL_REDRAW,
// TUI_DEBUG_FLUSH driving fmt.Fprintf debug output) generalized into
// log/slog with a lmittmann/tint handler for readable dev output.
package telemetry

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

const (
	envDebug      = "FRANKENTUI_DEBUG"
	envFullRedraw = "FRANKENTUI_FORCE_FULL_REDRAW"
)

// NewLogger returns a tint-backed slog.Logger writing to w. Level is Info
// unless FRANKENTUI_DEBUG is set, matching the teacher's pattern of a
// single env var gating verbose output.
func NewLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if DebugEnabled() {
		level = slog.LevelDebug
	}
	handler := tint.NewHandler(w, &tint.Options{Level: level})
	return slog.New(handler)
}

// DebugEnabled reports whether FRANKENTUI_DEBUG is set, mirroring the
// teacher's init()-time env check.
func DebugEnabled() bool {
	_, ok := os.LookupEnv(envDebug)
	return ok
}

// ForceFullRedraw reports whether FRANKENTUI_FORCE_FULL_REDRAW is set,
// the direct generalization of the teacher's TUI_FULL_REDRAW escape
// hatch (app.go) to this module's naming.
func ForceFullRedraw() bool {
	_, ok := os.LookupEnv(envFullRedraw)
	return ok
}
