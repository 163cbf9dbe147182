package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report key repeats, so held controls are inferred from
// recent presses.
const keyHoldDuration = 80 * time.Millisecond

// Input represents the current frame's input state.
//
// Left, Right, Thrust, Fire and Quit are level-triggered (held). Pause,
// Restart and Enter are edge-triggered: true only in the frame the key
// arrived.
type Input struct {
	Left    bool
	Right   bool
	Thrust  bool
	Fire    bool
	Quit    bool
	Pause   bool
	Restart bool
	Enter   bool
	Number  int
	Pressed []byte
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left   time.Time
	right  time.Time
	thrust time.Time
	fire   time.Time
	quit   time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
	now    func() time.Time
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The channel is closed when r returns an error; the stream then reports Quit.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{
		ch:  make(chan byte, 128),
		now: time.Now,
	}
}

// Reset forgets all held keys, e.g. after a pause or between games.
func (s *Stream) Reset() {
	s.state = keyState{}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
// Uses key state persistence to allow detecting simultaneous key combinations.
func ReadInput(s *Stream) Input {
	now := s.now()
	var buf []byte

	// Drain all available bytes
drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := Input{Number: -1, Pressed: buf}

	// Parse the collected bytes and update key state timestamps
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// Check for escape sequences (arrow keys, etc.)
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			// CSI sequence: ESC [ <code>
			switch buf[i+2] {
			case 'A': // Up arrow
				s.state.thrust = now
				i += 2
				continue
			case 'C': // Right arrow
				s.state.right = now
				i += 2
				continue
			case 'D': // Left arrow
				s.state.left = now
				i += 2
				continue
			case 'B': // Down arrow: unused
				i += 2
				continue
			}
		}

		applyByte(&s.state, &in, b, now)
	}

	// Keys are "held" if seen within hold duration
	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration
	in.Thrust = now.Sub(s.state.thrust) < keyHoldDuration
	in.Fire = now.Sub(s.state.fire) < keyHoldDuration
	in.Quit = s.closed || now.Sub(s.state.quit) < keyHoldDuration

	return in
}

// applyByte updates held key timestamps and edge-triggered flags for b.
func applyByte(state *keyState, in *Input, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'i', 'I':
		state.thrust = now
	case ' ', 'x', 'X':
		state.fire = now
	case 'p', 'P', '\x1b':
		in.Pause = true
	case 'r', 'R':
		in.Restart = true
	case '\n', '\r':
		in.Enter = true
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		in.Number = int(b - '0')
	}
}
