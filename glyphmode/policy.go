// Package glyphmode resolves the Unicode/ASCII glyph mode, emoji usage,
// and CJK-ambiguous-width policy from environment variables and detected
// terminal capabilities (spec §6 "Environment overrides"), grounded on
// original_source/crates/ftui-core/src/glyph_policy.rs, re-keyed to this
// module's own environment variable names rather than the original's.
package glyphmode

import "strings"

const (
	envGlyphMode = "FRANKENTUI_GLYPH_MODE"
	envEmoji     = "FRANKENTUI_GLYPH_EMOJI"
	envNoEmoji   = "FRANKENTUI_NO_EMOJI"
	envCJKWidth  = "FRANKENTUI_CJK_WIDTH"
)

// Mode selects Unicode or ASCII-only glyph rendering.
type Mode uint8

const (
	Unicode Mode = iota
	ASCII
)

func (m Mode) String() string {
	if m == ASCII {
		return "ascii"
	}
	return "unicode"
}

func parseMode(value string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "unicode", "uni", "u":
		return Unicode, true
	case "ascii", "ansi", "a":
		return ASCII, true
	default:
		return 0, false
	}
}

func parseBool(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}

// Policy is the resolved glyph capability policy for one run (spec §6).
type Policy struct {
	Mode                Mode
	Emoji               bool
	CJKAmbiguousWide    bool
	UnicodeLineDrawing  bool
	UnicodeArrows       bool
}

// EnvLookup resolves an environment variable by name, matching
// os.LookupEnv's two-value contract; tests supply a fake.
type EnvLookup func(key string) (string, bool)

// dumbTerms names TERM values treated as incapable of Unicode rendering,
// mirroring the original's Dumb/Vt100/LinuxConsole profile classes.
var dumbTerms = []string{"dumb", "vt100", "linux"}

func isDumbTerm(term string) bool {
	term = strings.ToLower(term)
	for _, d := range dumbTerms {
		if term == d {
			return true
		}
	}
	return false
}

var emojiCapableHints = []string{
	"wezterm", "alacritty", "iterm", "ghostty", "kitty",
	"xterm", "256color", "vscode", "rio", "hyper",
}

func isKnownEmojiTerminal(value string) bool {
	value = strings.ToLower(value)
	for _, hint := range emojiCapableHints {
		if strings.Contains(value, hint) {
			return true
		}
	}
	return false
}

// Detect resolves the glyph policy from env and the detected TERM value,
// following the original's precedence: explicit env override first, then
// a terminal-capability-derived default (spec §6).
func Detect(env EnvLookup) Policy {
	mode := detectMode(env)
	emoji := detectEmoji(env, mode)
	cjk := detectCJKWidth(env)

	return Policy{
		Mode:               mode,
		Emoji:              emoji,
		CJKAmbiguousWide:   cjk,
		UnicodeLineDrawing: mode == Unicode,
		UnicodeArrows:      mode == Unicode,
	}
}

func detectMode(env EnvLookup) Mode {
	if v, ok := env(envGlyphMode); ok {
		if m, ok := parseMode(v); ok {
			return m
		}
	}
	term, _ := env("TERM")
	if isDumbTerm(term) {
		return ASCII
	}
	return Unicode
}

func detectEmoji(env EnvLookup, mode Mode) bool {
	if mode == ASCII {
		return false
	}
	if v, ok := env(envEmoji); ok {
		if b, ok := parseBool(v); ok {
			return b
		}
	}
	if v, ok := env(envNoEmoji); ok {
		if b, ok := parseBool(v); ok {
			return !b
		}
	}
	term, _ := env("TERM")
	if isDumbTerm(term) {
		return false
	}
	if program, ok := env("TERM_PROGRAM"); ok && isKnownEmojiTerminal(program) {
		return true
	}
	if isKnownEmojiTerminal(term) {
		return true
	}
	return true
}

func detectCJKWidth(env EnvLookup) bool {
	if v, ok := env(envCJKWidth); ok {
		if b, ok := parseBool(v); ok {
			return b
		}
	}
	return false
}
