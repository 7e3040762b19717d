// Package config provides YAML-based configuration loading and difficulty
// presets for the companion engine.
package config

import "time"

// CompanionConfig contains every tunable of the companion engine.
type CompanionConfig struct {
	Playfield   PlayfieldConfig   `yaml:"playfield"`
	Avatar      AvatarConfig      `yaml:"avatar"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Particles   ParticleConfig    `yaml:"particles"`
	Gesture     GestureConfig     `yaml:"gesture"`
	Orientation OrientationConfig `yaml:"orientation"`
	Session     SessionConfig     `yaml:"session"`
	Feedback    FeedbackConfig    `yaml:"feedback"`
	Challenges  []Challenge       `yaml:"challenges"`
}

// PlayfieldConfig defines the bounded play area in abstract pixels.
type PlayfieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"` // Distance past an edge before an entity is pruned
}

// AvatarConfig defines the companion anchor.
type AvatarConfig struct {
	CenterYRatio float64 `yaml:"center_y_ratio"` // Base center height as a fraction of playfield height
	HitRadius    float64 `yaml:"hit_radius"`
	MinScale     float64 `yaml:"min_scale"`
	MaxScale     float64 `yaml:"max_scale"`
	SpringDecay  float64 `yaml:"spring_decay"`  // Multiplier applied to the offset each tick after release
	SnapDistance float64 `yaml:"snap_distance"` // Offset magnitude below which it snaps to zero
}

// PhysicsConfig defines per-kind kinematics. Velocities are px per tick.
type PhysicsConfig struct {
	OrbSpeed       float64 `yaml:"orb_speed"`
	TreatGravity   float64 `yaml:"treat_gravity"`
	TreatInitialVY float64 `yaml:"treat_initial_vy"`
	TreatJitter    float64 `yaml:"treat_jitter"` // Horizontal spread of treat drops around the avatar
	FallSpeed      float64 `yaml:"fall_speed"`   // Fixed downward velocity of falling objects
	FallGravity    float64 `yaml:"fall_gravity"`
}

// ScoringConfig defines point values and variant spawn weights.
type ScoringConfig struct {
	OrbPoints   int `yaml:"orb_points"`
	TreatPoints int `yaml:"treat_points"`
	StarPoints  int `yaml:"star_points"`
	HeartPoints int `yaml:"heart_points"`
	CoinPoints  int `yaml:"coin_points"`
	StarWeight  int `yaml:"star_weight"`
	HeartWeight int `yaml:"heart_weight"`
	CoinWeight  int `yaml:"coin_weight"`
}

// ParticleConfig defines the transient visual particle pool.
type ParticleConfig struct {
	Decay        float64 `yaml:"decay"` // Life lost per tick
	Gravity      float64 `yaml:"gravity"`
	Speed        float64 `yaml:"speed"` // Initial burst speed
	CatchBurst   int     `yaml:"catch_burst"`
	SparkleBurst int     `yaml:"sparkle_burst"`
}

// GestureConfig defines pointer gesture interpretation.
type GestureConfig struct {
	DragDamping     float64       `yaml:"drag_damping"`
	TapSlop         float64       `yaml:"tap_slop"`
	DoubleTapWindow time.Duration `yaml:"double_tap_window"`
}

// OrientationConfig defines tilt nudge and shake detection. Angles are degrees.
type OrientationConfig struct {
	ShakeThreshold float64       `yaml:"shake_threshold"`
	ShakeDebounce  time.Duration `yaml:"shake_debounce"`
	NudgeThreshold float64       `yaml:"nudge_threshold"`
	NudgeGain      float64       `yaml:"nudge_gain"`  // px per degree of tilt
	NudgeClamp     float64       `yaml:"nudge_clamp"` // Max absolute horizontal nudge in px
	NudgeSmoothing float64       `yaml:"nudge_smoothing"`
}

// SessionConfig defines the timed catch session.
type SessionConfig struct {
	Duration      time.Duration `yaml:"duration"`
	CountdownStep time.Duration `yaml:"countdown_step"`
	SpawnInterval time.Duration `yaml:"spawn_interval"`
	MissLimit     int           `yaml:"miss_limit"`
}

// FeedbackConfig defines dialogue, tones, and haptic patterns.
type FeedbackConfig struct {
	DialogueDuration time.Duration              `yaml:"dialogue_duration"`
	MoodLow          int                        `yaml:"mood_low"`  // Energy below this greets with low-state
	MoodHigh         int                        `yaml:"mood_high"` // Energy at or above this greets with high-state
	Dialogue         map[string][]string        `yaml:"dialogue"`
	Tones            map[string]ToneSpec        `yaml:"tones"`
	Haptics          map[string][]time.Duration `yaml:"haptics"`
}

// ToneSpec describes a short synthesized tone.
type ToneSpec struct {
	Frequency float64       `yaml:"frequency"`
	Duration  time.Duration `yaml:"duration"`
}

// Challenge is a display target for an accumulated progress category.
type Challenge struct {
	Key    string `yaml:"key"`
	Title  string `yaml:"title"`
	Target int    `yaml:"target"`
}
