package core

// RuntimeConfig contains configuration passed to frontends and the engine at
// open time. Screen dimensions are in terminal cells; the play area itself is
// measured in abstract pixels (see config.Playfield).
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  48,
		ScreenH:  32,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}
