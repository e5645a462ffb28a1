// Package lifecycle classifies competition events relative to a reference
// time and orders them for display.
package lifecycle

import (
	"time"

	"github.com/ariafatah0711/ctfs-sub001/internal/domain"
)

// State is the lifecycle tag of an event at a given instant.
type State string

const (
	StatePermanent State = "permanent"
	StateOngoing   State = "ongoing"
	StateUpcoming  State = "upcoming"
	StateEnded     State = "ended"
)

// Priority is the display rank of the state, lowest first.
func (s State) Priority() int {
	switch s {
	case StatePermanent:
		return 0
	case StateOngoing:
		return 1
	case StateUpcoming:
		return 2
	case StateEnded:
		return 3
	default:
		return 4
	}
}

// ParseState maps a state name to a State.
func ParseState(raw string) (State, bool) {
	switch s := State(raw); s {
	case StatePermanent, StateOngoing, StateUpcoming, StateEnded:
		return s, true
	default:
		return "", false
	}
}

// Classify returns the lifecycle state of event at now.
// Malformed bounds are treated as absent.
func Classify(event domain.Event, now time.Time) State {
	start, hasStart := event.Start()
	end, hasEnd := event.End()
	return classifyBounds(start, hasStart, end, hasEnd, now)
}

func classifyBounds(start time.Time, hasStart bool, end time.Time, hasEnd bool, now time.Time) State {
	switch {
	case !hasStart && !hasEnd:
		return StatePermanent
	case hasEnd && now.After(end):
		return StateEnded
	case hasStart && now.Before(start):
		return StateUpcoming
	default:
		return StateOngoing
	}
}
