package game

// State is the phase of a game session.
type State int

const (
	StateIdle          State = iota // not started or stopped
	StateSetup                      // building a level
	StatePlaying                    // player alive, asteroids left
	StatePlayerHit                  // player destroyed, waiting to respawn
	StateLevelComplete              // field cleared, waiting for the next level
	StateGameOver                   // no lives left
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSetup:
		return "setup"
	case StatePlaying:
		return "playing"
	case StatePlayerHit:
		return "player_hit"
	case StateLevelComplete:
		return "level_complete"
	case StateGameOver:
		return "game_over"
	}
	return "unknown"
}

// Notice is a short message for the HUD, such as an unlock.
type Notice struct {
	Text    string
	Expires float64 // game clock
}
