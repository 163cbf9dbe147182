package loop

import "time"

// Frame pacing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Render area limits in terminal cells. Larger terminals get a border
// around a centered canvas.
const (
	MaxRenderCols = 240
	MaxRenderRows = 80
)

// Inactivity, used by network sessions.
const (
	InactivityWarnUser       = 90 * time.Second
	InactivityDisconnectUser = 120 * time.Second
)

// promptBlink is the on/off period of blinking prompts.
const promptBlink = 600 * time.Millisecond

// leaderboardSize is the number of best games listed after a game ends.
const leaderboardSize = 5
