package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Budget.SoftMillis != 16 || cfg.Budget.HardMillis != 33 {
		t.Fatalf("expected default budget figures, got %+v", cfg.Budget)
	}
}

func TestLoadParsesTOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frankentui.toml")
	content := `
[budget]
soft_ms = 10
hard_ms = 20

[tick_strategy]
kind = "uniform"
uniform_n = 3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Budget.SoftMillis != 10 || cfg.Budget.HardMillis != 20 {
		t.Fatalf("unexpected budget: %+v", cfg.Budget)
	}
	if cfg.TickStrategy.Kind != "uniform" || cfg.TickStrategy.UniformN != 3 {
		t.Fatalf("unexpected tick strategy config: %+v", cfg.TickStrategy)
	}
}

func TestApplyEnvOverridesForceASCII(t *testing.T) {
	cfg := Default()
	env := map[string]string{"FRANKENTUI_FORCE_ASCII": "1"}
	cfg = ApplyEnvOverrides(cfg, func(k string) (string, bool) { v, ok := env[k]; return v, ok })
	if !cfg.Glyph.ForceASCII {
		t.Fatalf("expected ForceASCII to be set from env override")
	}
}

func TestBudgetConfigDurationHelpers(t *testing.T) {
	b := BudgetConfig{SoftMillis: 16, HardMillis: 33}
	if b.Soft().Milliseconds() != 16 || b.Hard().Milliseconds() != 33 {
		t.Fatalf("duration helpers mismatch: soft=%v hard=%v", b.Soft(), b.Hard())
	}
}
