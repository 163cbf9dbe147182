package loop

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/asteroidsx/internal/game"
)

// drawUI draws the text overlay for the current game phase.
func (s *Session) drawUI(now time.Time) {
	termWidth := s.canvas.TerminalWidth()
	termHeight := s.canvas.TerminalHeight()
	centerY := termHeight / 2

	if s.inactive {
		s.drawInactivityScreen(now, centerY)
		return
	}

	switch s.game.State() {
	case game.StateIdle:
		s.drawStartScreen(now, centerY)
	case game.StateGameOver:
		s.drawGameOverScreen(now, centerY)
	default:
		s.drawPlayingHUD(termWidth)
		s.drawNotices()
		switch {
		case s.game.Paused():
			s.center(centerY-1, "P A U S E D")
			s.center(centerY+1, "Press P to resume")
		case s.game.State() == game.StateLevelComplete:
			s.center(centerY, fmt.Sprintf("LEVEL %d", s.game.Level()))
		case s.game.State() == game.StatePlayerHit:
			s.center(centerY, fmt.Sprintf("Lives remaining: %d", s.game.Lives()))
		}
	}
}

// text writes str at the 1-based canvas position, clipped to the canvas,
// and marks the covered cells for repaint on the next frame.
func (s *Session) text(col, row int, str string) {
	width := s.canvas.TerminalWidth()
	if row < 1 || row > s.canvas.TerminalHeight() || col > width {
		return
	}
	if col < 1 {
		if 1-col >= len(str) {
			return
		}
		str = str[1-col:]
		col = 1
	}
	if col+len(str)-1 > width {
		str = str[:width-col+1]
	}
	s.out.WriteAt(col, row, str)
	s.canvas.MarkTextDirty(col, row, len(str))
}

func (s *Session) center(row int, str string) {
	s.text(s.canvas.TerminalWidth()/2-len(str)/2+1, row, str)
}

func blinkOn(now time.Time) bool {
	return now.UnixMilli()/promptBlink.Milliseconds()%2 == 0
}

// drawStartScreen draws the title, controls and the ship picker.
func (s *Session) drawStartScreen(now time.Time, centerY int) {
	top := centerY - 7
	s.center(top, "A S T E R O I D S   X")
	s.center(top+2, "~ a psychedelic rock field in your terminal ~")

	controls := []string{
		"W / Up  . . . . Thrust",
		"A D / < >  . .  Rotate",
		"SPACE  . . . . . Shoot",
		"P  . . . . . . . Pause",
		"R  . . . . . . Restart",
		"Q  . . . . . . .  Quit",
	}
	for i, line := range controls {
		s.center(top+4+i, line)
	}

	row := top + 5 + len(controls)
	if s.opts.Ships != nil {
		s.center(row, s.shipLine())
		row++
	}
	if blinkOn(now) {
		s.center(row+1, ">>  Press SPACE to Start  <<")
	}
}

// shipLine lists the gallery as "1:Classic* 2:Arrow 3:[locked]".
func (s *Session) shipLine() string {
	var b strings.Builder
	for i, e := range s.opts.Ships.All() {
		if i >= 9 {
			break
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		name := e.Style.Name
		if !e.Unlocked {
			name = "[locked]"
		}
		fmt.Fprintf(&b, "%d:%s", i+1, name)
		if e.Selected {
			b.WriteByte('*')
		}
	}
	return b.String()
}

// drawPlayingHUD draws score, level and lives on the top row. Fields are
// padded so shrinking values leave no residue.
func (s *Session) drawPlayingHUD(termWidth int) {
	s.text(2, 1, fmt.Sprintf("Score: %-8d", s.game.Score()))
	s.center(1, fmt.Sprintf("Level: %-3d", s.game.Level()))
	lives := fmt.Sprintf("Lives: %-3d", s.game.Lives())
	s.text(termWidth-len(lives), 1, lives)
}

// drawNotices lists unlocks and achievements under the top row.
func (s *Session) drawNotices() {
	for i, n := range s.game.Notices() {
		s.center(3+i, n.Text)
	}
}

// drawGameOverScreen draws the session summary.
func (s *Session) drawGameOverScreen(now time.Time, centerY int) {
	sum := s.game.Summary()
	top := centerY - 6
	s.center(top, "G A M E   O V E R")

	lines := []string{
		fmt.Sprintf("Score: %d", sum.Score),
		fmt.Sprintf("Level reached: %d", sum.Level),
		fmt.Sprintf("Asteroids destroyed: %d", sum.Asteroids),
		fmt.Sprintf("Accuracy: %d%%", sum.Accuracy),
		fmt.Sprintf("Time alive: %s", sum.TimeAlive),
	}
	if sum.NewHighScore {
		lines = append(lines, "NEW HIGH SCORE!")
	}
	if sum.NewMaxLevel {
		lines = append(lines, "NEW BEST LEVEL!")
	}
	for _, a := range sum.Achievements {
		lines = append(lines, "Achievement: "+a)
	}
	if len(s.board) > 0 {
		lines = append(lines, "")
		lines = append(lines, s.boardLines()...)
	}
	top = min(top, centerY-(len(lines)+4)/2)
	for i, line := range lines {
		if line != "" {
			s.center(top+2+i, line)
		}
	}

	if blinkOn(now) {
		s.center(top+3+len(lines), ">>  Press ENTER to play again  <<")
	}
}

// boardLines lists the best games and the average score.
func (s *Session) boardLines() []string {
	lines := []string{fmt.Sprintf("Best games (average %.0f over %d)", s.boardStats.MeanScore, s.boardStats.Games)}
	for i, e := range s.board {
		lines = append(lines, fmt.Sprintf("%d. %7d  level %-2d", i+1, e.Score, e.Level))
	}
	return lines
}

// drawInactivityScreen warns before an idle session is disconnected.
func (s *Session) drawInactivityScreen(now time.Time, centerY int) {
	s.center(centerY-2, "INACTIVITY WARNING")
	if s.opts.IdleTimeout > 0 {
		left := int((s.opts.IdleTimeout - now.Sub(s.lastInput)).Seconds())
		s.center(centerY, fmt.Sprintf("You will be disconnected in %d seconds.", max(left, 0)))
	}
	s.center(centerY+2, "Press any key to continue")
}
