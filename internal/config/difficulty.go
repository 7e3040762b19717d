package config

import (
	"fmt"
	"time"
)

// DifficultyPreset represents a named difficulty level for catch sessions.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, or hard)", s)
	}
}

// ApplyPreset modifies the session parameters based on a difficulty preset.
// Normal leaves the loaded configuration untouched.
func ApplyPreset(cfg *CompanionConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Session.Duration = 30 * time.Second
		cfg.Session.SpawnInterval = 1800 * time.Millisecond
		cfg.Session.MissLimit = 5
		cfg.Physics.FallSpeed *= 0.8
	case DifficultyHard:
		cfg.Session.SpawnInterval = 1000 * time.Millisecond
		cfg.Session.MissLimit = 2
		cfg.Physics.FallSpeed *= 1.3
	}
}
