package game

import (
	"cmp"
	"slices"
)

type eventKind int

const (
	eventRespawn eventKind = iota
	eventNextLevel
)

func (k eventKind) String() string {
	switch k {
	case eventRespawn:
		return "respawn"
	case eventNextLevel:
		return "next_level"
	}
	return "unknown"
}

// scheduledEvent is a deferred transition. It only fires while the session
// generation it was scheduled in is still current.
type scheduledEvent struct {
	at         float64
	generation int
	kind       eventKind
}

// scheduler queues deferred transitions against the game clock.
type scheduler struct {
	events []scheduledEvent
	due    []scheduledEvent
}

func (s *scheduler) schedule(at float64, generation int, kind eventKind) {
	s.events = append(s.events, scheduledEvent{at: at, generation: generation, kind: kind})
}

// pop removes every event due at now and returns the ones still belonging
// to generation in firing order. Stale events are dropped.
func (s *scheduler) pop(now float64, generation int) []scheduledEvent {
	s.due = s.due[:0]
	n := 0
	for _, ev := range s.events {
		switch {
		case ev.generation != generation:
		case ev.at <= now:
			s.due = append(s.due, ev)
		default:
			s.events[n] = ev
			n++
		}
	}
	s.events = s.events[:n]
	slices.SortStableFunc(s.due, func(a, b scheduledEvent) int { return cmp.Compare(a.at, b.at) })
	return s.due
}

func (s *scheduler) pending(kind eventKind) bool {
	return slices.ContainsFunc(s.events, func(ev scheduledEvent) bool { return ev.kind == kind })
}

func (s *scheduler) len() int { return len(s.events) }

func (s *scheduler) clear() {
	s.events = s.events[:0]
}
