// Package config loads frame-budget thresholds, the tick-strategy choice,
// and environment overrides from a TOML file (spec §10 ambient
// configuration), grounded on the teacher's env-var-driven init() in
// app.go (TUI_FULL_REDRAW, TUI_DEBUG_FLUSH) generalized into a structured
// file plus override layer, using BurntSushi/toml as the teacher's stack
// already depends on it for configuration-shaped concerns.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full set of adaptive-controller and degradation settings
// loadable from a TOML file (spec §4.9, §4.10).
type Config struct {
	Budget      BudgetConfig      `toml:"budget"`
	TickStrategy TickStrategyConfig `toml:"tick_strategy"`
	Glyph       GlyphConfig       `toml:"glyph"`
	Evidence    EvidenceConfig    `toml:"evidence"`
}

type BudgetConfig struct {
	SoftMillis int    `toml:"soft_ms"`
	HardMillis int    `toml:"hard_ms"`
	MaxMemory  uint64 `toml:"max_memory_bytes"`
	MaxQueue   int    `toml:"max_queue_depth"`
}

func (b BudgetConfig) Soft() time.Duration { return time.Duration(b.SoftMillis) * time.Millisecond }
func (b BudgetConfig) Hard() time.Duration { return time.Duration(b.HardMillis) * time.Millisecond }

// TickStrategyConfig selects and parameterizes a tickstrategy.Strategy by
// name so it can be chosen declaratively (spec §4.9).
type TickStrategyConfig struct {
	Kind             string  `toml:"kind"` // "active_only" | "uniform" | "active_plus_adjacent" | "predictive" | "custom"
	UniformN         uint64  `toml:"uniform_n"`
	AdjacentDivisor  uint64  `toml:"adjacent_divisor"`
	PredictiveMaxDivisor uint64 `toml:"predictive_max_divisor"`
	PredictiveWarmup uint64  `toml:"predictive_warmup"`
	PredictiveDecay  float64 `toml:"predictive_decay"`
}

type GlyphConfig struct {
	ForceASCII   bool `toml:"force_ascii"`
	CJKAmbiguousWide bool `toml:"cjk_ambiguous_wide"`
}

type EvidenceConfig struct {
	Capacity  int    `toml:"capacity"`
	ExportPath string `toml:"export_path"`
}

// Default returns the configuration used when no file is present, mirroring
// spec §4.10's example budget figures.
func Default() Config {
	return Config{
		Budget: BudgetConfig{SoftMillis: 16, HardMillis: 33},
		TickStrategy: TickStrategyConfig{
			Kind:                "active_plus_adjacent",
			AdjacentDivisor:     4,
			PredictiveMaxDivisor: 16,
			PredictiveWarmup:    20,
		},
		Evidence: EvidenceConfig{Capacity: 1000},
	}
}

// Load reads and decodes a TOML config file at path, falling back to
// Default() values for any field the file omits.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnvOverrides layers the spec §6 environment overrides on top of a
// loaded Config: forcing ASCII glyph mode, the CJK ambiguous-width toggle,
// and the evidence-logging destination. Forcing full layout recomputation
// is not handled here; Config has no field for it.
func ApplyEnvOverrides(cfg Config, lookup func(string) (string, bool)) Config {
	if v, ok := lookup("FRANKENTUI_FORCE_ASCII"); ok && isTruthy(v) {
		cfg.Glyph.ForceASCII = true
	}
	if v, ok := lookup("FRANKENTUI_CJK_WIDTH"); ok && isTruthy(v) {
		cfg.Glyph.CJKAmbiguousWide = true
	}
	if v, ok := lookup("FRANKENTUI_EVIDENCE_EXPORT"); ok && v != "" {
		cfg.Evidence.ExportPath = v
	}
	return cfg
}

func isTruthy(v string) bool {
	switch v {
	case "1", "true", "yes", "on", "TRUE", "True":
		return true
	default:
		return false
	}
}
