package glyphmode

import "testing"

func envFrom(pairs map[string]string) EnvLookup {
	return func(key string) (string, bool) {
		v, ok := pairs[key]
		return v, ok
	}
}

func TestDetectExplicitASCIIModeDisablesEverything(t *testing.T) {
	env := envFrom(map[string]string{envGlyphMode: "ascii", "TERM": "xterm-256color"})
	p := Detect(env)
	if p.Mode != ASCII {
		t.Fatalf("expected ASCII mode, got %v", p.Mode)
	}
	if p.UnicodeLineDrawing || p.UnicodeArrows || p.Emoji {
		t.Fatalf("ASCII mode should disable Unicode line drawing, arrows, and emoji: %+v", p)
	}
}

func TestDetectDumbTermDefaultsToASCII(t *testing.T) {
	env := envFrom(map[string]string{"TERM": "dumb"})
	p := Detect(env)
	if p.Mode != ASCII {
		t.Fatalf("dumb terminal should default to ASCII mode, got %v", p.Mode)
	}
}

func TestDetectEmojiOverrideDisable(t *testing.T) {
	env := envFrom(map[string]string{envEmoji: "0", "TERM": "wezterm"})
	p := Detect(env)
	if p.Emoji {
		t.Fatalf("explicit emoji=0 override should disable emoji even on a capable terminal")
	}
}

func TestDetectEmojiDefaultsTrueOnModernTerm(t *testing.T) {
	env := envFrom(map[string]string{"TERM": "xterm-256color"})
	p := Detect(env)
	if !p.Emoji {
		t.Fatalf("modern terminal should default to emoji enabled")
	}
}

func TestDetectLegacyNoEmojiInverts(t *testing.T) {
	env := envFrom(map[string]string{envNoEmoji: "true", "TERM": "xterm-256color"})
	p := Detect(env)
	if p.Emoji {
		t.Fatalf("legacy FRANKENTUI_NO_EMOJI=true should disable emoji")
	}
}

func TestDetectCJKWidthRespectsEnvOverride(t *testing.T) {
	env := envFrom(map[string]string{envCJKWidth: "1"})
	p := Detect(env)
	if !p.CJKAmbiguousWide {
		t.Fatalf("explicit CJK width override should be honored")
	}
}

func TestDetectCJKWidthDefaultsFalse(t *testing.T) {
	env := envFrom(map[string]string{})
	p := Detect(env)
	if p.CJKAmbiguousWide {
		t.Fatalf("CJK ambiguous width should default to narrow (false)")
	}
}
