package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "companion.yaml"

// Load loads the companion configuration.
// Search order: customPath -> ~/.companion/configs/companion.yaml ->
// ./configs/companion.yaml -> embedded default.
//
// Files found on the search path are decoded on top of Default(), so a user
// file only needs the keys it wants to change.
func Load(customPath string) (CompanionConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return CompanionConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return CompanionConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	candidates := []string{userConfigPath(configFile), filepath.Join("configs", configFile)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultCompanionYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default() and validates the result.
func Parse(data []byte) (CompanionConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CompanionConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return CompanionConfig{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot run with.
func (c CompanionConfig) Validate() error {
	var errs []error

	if c.Playfield.Width <= 0 || c.Playfield.Height <= 0 {
		errs = append(errs, errors.New("playfield dimensions must be positive"))
	}
	if c.Avatar.HitRadius <= 0 {
		errs = append(errs, errors.New("avatar.hit_radius must be positive"))
	}
	if c.Avatar.MinScale <= 0 || c.Avatar.MinScale > c.Avatar.MaxScale {
		errs = append(errs, fmt.Errorf("avatar scale bounds invalid: [%g, %g]", c.Avatar.MinScale, c.Avatar.MaxScale))
	}
	if c.Avatar.SpringDecay <= 0 || c.Avatar.SpringDecay >= 1 {
		errs = append(errs, errors.New("avatar.spring_decay must be in (0, 1)"))
	}
	if c.Gesture.DragDamping <= 0 {
		errs = append(errs, errors.New("gesture.drag_damping must be positive"))
	}
	if c.Session.Duration <= 0 || c.Session.CountdownStep <= 0 || c.Session.SpawnInterval <= 0 {
		errs = append(errs, errors.New("session durations must be positive"))
	}
	if c.Session.MissLimit < 1 {
		errs = append(errs, errors.New("session.miss_limit must be at least 1"))
	}
	if c.Particles.Decay <= 0 {
		errs = append(errs, errors.New("particles.decay must be positive"))
	}
	if c.Scoring.StarWeight+c.Scoring.HeartWeight+c.Scoring.CoinWeight <= 0 {
		errs = append(errs, errors.New("scoring variant weights must not all be zero"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".companion", "configs", filename)
}
