package present

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
)

// Capabilities describes what a target terminal can render, gating the
// presenter's feature set (spec §4.4).
type Capabilities struct {
	Profile            colorprofile.Profile
	SynchronizedOutput bool
	Hyperlinks         bool
	ExtendedUnderline  bool
	ScrollRegion       bool
	MuxPassthrough     MuxKind
}

// MuxKind identifies a terminal multiplexer host that intercepts escape
// sequences and needs passthrough wrapping (spec §4.4, §12).
type MuxKind uint8

const (
	MuxNone MuxKind = iota
	MuxTmux
	MuxScreen
)

// Detect probes the color profile and a short list of well-known
// environment variables to build a Capabilities value for w. Synchronized
// output and extended underline require at least ANSI256 and a
// TERM/TERM_PROGRAM string known to support them; hyperlinks require
// ANSI256 only; scroll regions require any profile other than NoTTY and
// Ascii. No capability-query escape is sent, since there is no portable
// one the presenter can send and block on without risking a hang on
// terminals that don't answer it.
func Detect(w io.Writer, environ []string) Capabilities {
	profile := colorprofile.Detect(w, environ)
	caps := Capabilities{Profile: profile}
	caps.MuxPassthrough = detectMux(environ)

	term := lookupEnv(environ, "TERM")
	termProgram := strings.ToLower(lookupEnv(environ, "TERM_PROGRAM"))

	modern := isAtLeast256Color(profile)
	knownModernHost := isKnownModernHost(term, termProgram)

	caps.Hyperlinks = modern
	caps.ExtendedUnderline = modern && knownModernHost
	caps.SynchronizedOutput = modern && knownModernHost
	caps.ScrollRegion = profile != colorprofile.NoTTY && profile != colorprofile.Ascii

	return caps
}

// isAtLeast256Color reports whether profile is ANSI256 or TrueColor,
// checked by explicit equality rather than ordinal comparison: this
// package does not depend on colorprofile.Profile's constants being
// declared in capability order.
func isAtLeast256Color(profile colorprofile.Profile) bool {
	return profile == colorprofile.ANSI256 || profile == colorprofile.TrueColor
}

func isKnownModernHost(term, termProgram string) bool {
	for _, needle := range []string{"kitty", "wezterm", "alacritty", "iterm", "ghostty", "rio", "vscode", "foot"} {
		if strings.Contains(termProgram, needle) || strings.Contains(term, needle) {
			return true
		}
	}
	return strings.Contains(term, "256color") || strings.Contains(term, "direct")
}

func lookupEnv(environ []string, key string) string {
	for _, kv := range environ {
		if v, ok := strings.CutPrefix(kv, key+"="); ok {
			return v
		}
	}
	return ""
}

func detectMux(environ []string) MuxKind {
	if lookupEnv(environ, "TMUX") != "" {
		return MuxTmux
	}
	term := lookupEnv(environ, "TERM")
	if strings.HasPrefix(term, "screen") || lookupEnv(environ, "STY") != "" {
		return MuxScreen
	}
	return MuxNone
}

// DetectStdout is a convenience wrapper around Detect for os.Stdout and
// the process environment.
func DetectStdout() Capabilities {
	return Detect(os.Stdout, os.Environ())
}
