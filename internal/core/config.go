package core

// RuntimeConfig contains configuration passed to a session at start.
// Front-ends use it to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	FrameFPS int   // Render callbacks per second (simulation rate is fixed separately)
	Seed     int64 // RNG seed for level generation
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		FrameFPS: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}
