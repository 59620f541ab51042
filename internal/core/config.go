package core

// RuntimeConfig contains configuration passed to a game by the platform.
// Games use this to size their screen output and seed their simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the platform-facing summary of a running game.
type GameState struct {
	Score    int  // Current score
	Started  bool // Whether the first round has begun
	GameOver bool // Whether the current round has ended
	Paused   bool // Whether the platform has stopped ticking
}

// StepResult is returned by Step after each simulation tick.
type StepResult struct {
	State GameState
}
