package lifecycle

import (
	"slices"
	"strings"
	"time"

	"github.com/ariafatah0711/ctfs-sub001/internal/domain"
)

// Classified pairs an event with its state at the time of ordering.
type Classified struct {
	Event domain.Event
	State State
}

type sortKey struct {
	event    domain.Event
	state    State
	start    time.Time
	hasStart bool
	end      time.Time
	hasEnd   bool
}

// Order returns the events sorted for display at now. The input slice is
// not modified. The result does not depend on input order.
func Order(events []domain.Event, now time.Time) []domain.Event {
	classified := OrderClassified(events, now)
	out := make([]domain.Event, len(classified))
	for i, c := range classified {
		out[i] = c.Event
	}
	return out
}

// OrderClassified is Order that also reports each event's state.
func OrderClassified(events []domain.Event, now time.Time) []Classified {
	keys := make([]sortKey, len(events))
	for i, event := range events {
		start, hasStart := event.Start()
		end, hasEnd := event.End()
		keys[i] = sortKey{
			event:    event,
			state:    classifyBounds(start, hasStart, end, hasEnd, now),
			start:    start,
			hasStart: hasStart,
			end:      end,
			hasEnd:   hasEnd,
		}
	}

	slices.SortFunc(keys, compareKeys)

	out := make([]Classified, len(keys))
	for i, k := range keys {
		out[i] = Classified{Event: k.event, State: k.state}
	}
	return out
}

func compareKeys(a, b sortKey) int {
	if c := a.state.Priority() - b.state.Priority(); c != 0 {
		return c
	}

	var c int
	switch a.state {
	case StatePermanent:
		c = compareBound(a.start, a.hasStart, b.start, b.hasStart, true)
	case StateOngoing:
		c = compareBound(a.end, a.hasEnd, b.end, b.hasEnd, false)
	case StateUpcoming:
		c = compareBound(a.start, a.hasStart, b.start, b.hasStart, false)
	case StateEnded:
		// Most recently ended first; a missing end sorts ahead.
		c = -compareBound(a.end, a.hasEnd, b.end, b.hasEnd, false)
	}
	if c != 0 {
		return c
	}

	if c := strings.Compare(a.event.Name, b.event.Name); c != 0 {
		return c
	}
	return strings.Compare(a.event.ID, b.event.ID)
}

// compareBound orders two optional instants ascending. absentFirst decides
// whether a missing bound sorts before or after every present one.
func compareBound(a time.Time, hasA bool, b time.Time, hasB bool, absentFirst bool) int {
	switch {
	case !hasA && !hasB:
		return 0
	case !hasA:
		if absentFirst {
			return -1
		}
		return 1
	case !hasB:
		if absentFirst {
			return 1
		}
		return -1
	default:
		return a.Compare(b)
	}
}

// Group buckets ordered events by state, keeping their relative order.
func Group(classified []Classified) map[State][]domain.Event {
	groups := make(map[State][]domain.Event, 4)
	for _, c := range classified {
		groups[c.State] = append(groups[c.State], c.Event)
	}
	return groups
}
