package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to the drawing surface and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Drawing surface width in platform units (pixels or cells)
	ScreenH  int   // Drawing surface height in platform units
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the round has ended (won or lost)
	Won      bool // Whether the round ended with a win
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
