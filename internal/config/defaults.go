package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/companion.yaml
var defaultCompanionYAML []byte

// Default returns the built-in companion configuration. It matches the
// embedded defaults/companion.yaml and is used when that file cannot be parsed.
func Default() CompanionConfig {
	return CompanionConfig{
		Playfield: PlayfieldConfig{
			Width:  360,
			Height: 640,
			Margin: 40,
		},
		Avatar: AvatarConfig{
			CenterYRatio: 0.62,
			HitRadius:    56,
			MinScale:     0.5,
			MaxScale:     2.5,
			SpringDecay:  0.82,
			SnapDistance: 1,
		},
		Physics: PhysicsConfig{
			OrbSpeed:       9,
			TreatGravity:   0.35,
			TreatInitialVY: 1,
			TreatJitter:    30,
			FallSpeed:      3.2,
			FallGravity:    0,
		},
		Scoring: ScoringConfig{
			OrbPoints:   5,
			TreatPoints: 10,
			StarPoints:  10,
			HeartPoints: 20,
			CoinPoints:  30,
			StarWeight:  6,
			HeartWeight: 3,
			CoinWeight:  1,
		},
		Particles: ParticleConfig{
			Decay:        0.025,
			Gravity:      0.12,
			Speed:        3,
			CatchBurst:   10,
			SparkleBurst: 24,
		},
		Gesture: GestureConfig{
			DragDamping:     2,
			TapSlop:         10,
			DoubleTapWindow: 300 * time.Millisecond,
		},
		Orientation: OrientationConfig{
			ShakeThreshold: 25,
			ShakeDebounce:  time.Second,
			NudgeThreshold: 6,
			NudgeGain:      2.5,
			NudgeClamp:     60,
			NudgeSmoothing: 0.25,
		},
		Session: SessionConfig{
			Duration:      20 * time.Second,
			CountdownStep: time.Second,
			SpawnInterval: 1400 * time.Millisecond,
			MissLimit:     3,
		},
		Feedback: FeedbackConfig{
			DialogueDuration: 2500 * time.Millisecond,
			MoodLow:          30,
			MoodHigh:         80,
			Dialogue:         defaultDialogue(),
			Tones: map[string]ToneSpec{
				"tap":          {Frequency: 660, Duration: 60 * time.Millisecond},
				"spin":         {Frequency: 880, Duration: 120 * time.Millisecond},
				"sparkle":      {Frequency: 1320, Duration: 150 * time.Millisecond},
				"catch-orb":    {Frequency: 784, Duration: 80 * time.Millisecond},
				"catch-treat":  {Frequency: 523, Duration: 90 * time.Millisecond},
				"catch-object": {Frequency: 988, Duration: 60 * time.Millisecond},
				"miss":         {Frequency: 196, Duration: 140 * time.Millisecond},
				"game-start":   {Frequency: 587, Duration: 200 * time.Millisecond},
				"game-win":     {Frequency: 1047, Duration: 300 * time.Millisecond},
			},
			Haptics: map[string][]time.Duration{
				"tap":          {15 * time.Millisecond},
				"spin":         {20 * time.Millisecond, 40 * time.Millisecond, 20 * time.Millisecond},
				"sparkle":      {30 * time.Millisecond, 30 * time.Millisecond, 30 * time.Millisecond},
				"catch-object": {25 * time.Millisecond},
				"miss":         {80 * time.Millisecond},
				"game-win":     {60 * time.Millisecond, 40 * time.Millisecond, 120 * time.Millisecond},
			},
		},
		Challenges: []Challenge{
			{Key: "catch", Title: "Catch 50 things", Target: 50},
			{Key: "feed", Title: "Feed 20 treats", Target: 20},
			{Key: "trick", Title: "Perform 30 tricks", Target: 30},
			{Key: "game", Title: "Finish 5 games with points", Target: 5},
		},
	}
}

func defaultDialogue() map[string][]string {
	return map[string][]string{
		"greeting":    {"Hi again!", "There you are!", "Ready to play?"},
		"tap":         {"Boop!", "Hehe, that tickles.", "Hop!"},
		"spin":        {"Wheee!", "Round and round!", "Did you see that spin?"},
		"catch-orb":   {"Got it!", "Energy up!", "Nice throw!"},
		"catch-treat": {"Yum!", "Crunchy!", "More please!"},
		"sparkle":     {"Sparkles!", "Whoa, shaky!", "Shiny!"},
		"low-state":   {"I'm a little sleepy...", "Could use a snack.", "Low battery..."},
		"high-state":  {"I feel amazing!", "Let's go go go!", "Best day ever!"},
		"game-start":  {"Catch them all!", "Here they come!", "Let's catch some stars!"},
		"game-win":    {"What a game!", "We did it!", "High five!"},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultCompanionYAML
}
