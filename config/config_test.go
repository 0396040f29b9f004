package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
}

func TestValidateBounds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*StrategyConfig)
		want   string
	}{
		{"zero risk", func(c *StrategyConfig) { c.RiskFraction = 0 }, "RiskFraction"},
		{"excess risk", func(c *StrategyConfig) { c.RiskFraction = 0.6 }, "RiskFraction"},
		{"zero stop multiplier", func(c *StrategyConfig) { c.StopMultiplier = 0 }, "StopMultiplier"},
		{"exposure over 1", func(c *StrategyConfig) { c.MaxPositionFraction = 1.2 }, "MaxPositionFraction"},
		{"retain everything", func(c *StrategyConfig) { c.RetainFraction = 1 }, "RetainFraction"},
		{"fast not shorter", func(c *StrategyConfig) { c.FastPeriod = 30 }, "FastPeriod"},
		{"inverted rsi bands", func(c *StrategyConfig) { c.RSIOversold = 80 }, "RSIOversold"},
		{"inverted hold bars", func(c *StrategyConfig) { c.MinHoldBars = 20 }, "MinHoldBars"},
		{"inverted ml bands", func(c *StrategyConfig) { c.MLShortThreshold = 0.9 }, "MLShortThreshold"},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.mutate(&cfg)
		err := cfg.Validate()
		if err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: error %q does not mention %s", tc.name, err, tc.want)
		}
	}
}

func TestLoadFileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "strategy.yaml")
	body := "risk_fraction: 0.01\nstop_multiplier: 3.0\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.RiskFraction != 0.01 {
		t.Fatalf("RiskFraction = %v, want 0.01 from file", cfg.RiskFraction)
	}
	if cfg.StopMultiplier != 3.0 {
		t.Fatalf("StopMultiplier = %v, want 3.0 from file", cfg.StopMultiplier)
	}
	// Untouched keys fall back to defaults.
	if cfg.RetainFraction != Default().RetainFraction {
		t.Fatalf("RetainFraction = %v, want default %v", cfg.RetainFraction, Default().RetainFraction)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "strategy.yaml")
	if err := os.WriteFile(path, []byte("risk_fraction: 0.9\n"), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected out-of-range risk fraction to fail Load")
	}
}
