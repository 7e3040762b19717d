package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}

	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded YAML and Default() disagree:\nyaml:    %+v\ndefault: %+v", cfg, Default())
	}
}

func TestParseOverridesOnTopOfDefaults(t *testing.T) {
	data := []byte(`
session:
  duration: 45s
  miss_limit: 7
gesture:
  double_tap_window: 250ms
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if cfg.Session.Duration != 45*time.Second {
		t.Errorf("Duration = %v, expected 45s", cfg.Session.Duration)
	}
	if cfg.Session.MissLimit != 7 {
		t.Errorf("MissLimit = %d, expected 7", cfg.Session.MissLimit)
	}
	if cfg.Gesture.DoubleTapWindow != 250*time.Millisecond {
		t.Errorf("DoubleTapWindow = %v, expected 250ms", cfg.Gesture.DoubleTapWindow)
	}
	// Untouched keys keep their defaults
	if cfg.Session.SpawnInterval != 1400*time.Millisecond {
		t.Errorf("SpawnInterval = %v, expected default 1.4s", cfg.Session.SpawnInterval)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CompanionConfig)
	}{
		{"inverted scale bounds", func(c *CompanionConfig) { c.Avatar.MinScale = 3 }},
		{"zero miss limit", func(c *CompanionConfig) { c.Session.MissLimit = 0 }},
		{"zero spawn interval", func(c *CompanionConfig) { c.Session.SpawnInterval = 0 }},
		{"spring decay of one", func(c *CompanionConfig) { c.Avatar.SpringDecay = 1 }},
		{"no variant weights", func(c *CompanionConfig) {
			c.Scoring.StarWeight, c.Scoring.HeartWeight, c.Scoring.CoinWeight = 0, 0, 0
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("Default() should be valid, got %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "my.yaml")
	if err := os.WriteFile(path, []byte("avatar:\n  hit_radius: 80\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Avatar.HitRadius != 80 {
		t.Errorf("HitRadius = %f, expected 80", cfg.Avatar.HitRadius)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() with a missing custom path should fail")
	}
}

func TestApplyPreset(t *testing.T) {
	easy := Default()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Session.MissLimit <= Default().Session.MissLimit {
		t.Error("easy should allow more misses")
	}

	hard := Default()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Session.SpawnInterval >= Default().Session.SpawnInterval {
		t.Error("hard should spawn faster")
	}

	normal := Default()
	ApplyPreset(&normal, DifficultyNormal)
	if !reflect.DeepEqual(normal, Default()) {
		t.Error("normal should not change the config")
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset should reject unknown presets")
	}
}
