package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay

	ConfigPath string // Custom rules YAML, empty for the default search order
	Difficulty string // "easy", "normal" or "hard"; empty means normal
	Theme      string // Render palette; ignored by the simulation
	Sound      bool   // Accepted for completeness; the simulation ignores it
	HighScore  int    // Persisted high score read at startup
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   60,
		Seed:       0, // 0 means use current time in platform layer
		Difficulty: "normal",
		Theme:      "neon",
		Sound:      true,
	}
}

// Event is a notification emitted by a game during a step.
// Platform collaborators (HUD, log, recorder, storage) consume them.
type Event interface {
	Name() string
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int  // Current player score
	Total     int  // Score that counts toward the high score
	HighScore int  // Best known combined score
	GameOver  bool // Whether the game has ended
	Paused    bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
