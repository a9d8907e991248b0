package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Host frames per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int    // Pins knocked down across all settled rounds
	Round    int    // Number of the round in progress (1-based)
	Launched bool   // Ball is rolling
	Standing int    // Pins still within reach of their rest position
	Prompt   string // Non-empty while the game waits for ActionConfirm
}

// AwaitingConfirm reports whether the game is holding for an acknowledgment.
func (s GameState) AwaitingConfirm() bool {
	return s.Prompt != ""
}

// RoundOutcome describes a finished round for persistence and display.
type RoundOutcome struct {
	Round    int
	PinsDown int
	Steps    int     // Physics steps taken between launch and round end
	SimTime  float64 // Simulated seconds between launch and round end
	EndedBy  string  // "settled" or "reset"
}

// StepResult is returned by Game.Frame() after each host frame.
type StepResult struct {
	State  GameState
	Steps  int            // Physics steps executed during this frame
	Rounds []RoundOutcome // Rounds that ended during this frame
}
