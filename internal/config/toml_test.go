package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("missing config must not error: %v", err)
	}
	params := cfg.SessionDefaults()
	if params.Count != DefaultSessionCount || params.Shots != DefaultShots {
		t.Fatalf("expected built-in defaults, got %+v", params)
	}
	if cfg.ActiveUser() != DefaultUser {
		t.Fatalf("expected default user, got %s", cfg.ActiveUser())
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[user]
name = "alex"

[sessions]
count = 4
session-time = 30
shots = 2

[decay]
min-weight = 0.1
zero-day-threshold = 90

[weights]
"Quiz" = 0.35
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	params := cfg.SessionDefaults()
	if params.Count != 4 || params.SessionTime != 30 || params.Shots != 2 {
		t.Fatalf("unexpected session params: %+v", params)
	}
	if params.BreakTime != DefaultBreakTime {
		t.Fatalf("unset keys must keep defaults, got %d", params.BreakTime)
	}
	decay := cfg.DateDecay()
	if decay.MinWeight != 0.1 || decay.ZeroDayThreshold != 90 {
		t.Fatalf("unexpected decay: %+v", decay)
	}
	if decay.MaxWeight != DefaultDecayMaxWeight {
		t.Fatalf("unset decay keys must keep defaults, got %v", decay.MaxWeight)
	}
	if cfg.ActiveUser() != "alex" {
		t.Fatalf("unexpected user: %s", cfg.ActiveUser())
	}

	merged := cfg.MergeWeights(map[string]float64{"Quiz": 0.3, "Exam": 0.6})
	if merged["Quiz"] != 0.35 || merged["Exam"] != 0.6 {
		t.Fatalf("unexpected merged weights: %v", merged)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("empty path must error")
	}
}
