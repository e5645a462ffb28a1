package app

import (
	"context"

	"github.com/ariafatah0711/ctfs-sub001/internal/clock"
	"github.com/ariafatah0711/ctfs-sub001/internal/domain"
	"github.com/ariafatah0711/ctfs-sub001/internal/lifecycle"
)

type EventLister interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
}

// EventService serves the public, read-only view of events.
type EventService struct {
	repo  EventLister
	clock clock.Clock
}

func NewEventService(repo EventLister, clk clock.Clock) *EventService {
	return &EventService{
		repo:  repo,
		clock: clk,
	}
}

// ListEvents returns events in display order, optionally limited to states.
func (s *EventService) ListEvents(ctx context.Context, states ...lifecycle.State) ([]lifecycle.Classified, error) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	ordered := lifecycle.OrderClassified(events, s.clock.Now())
	if len(states) == 0 {
		return ordered, nil
	}

	keep := make(map[lifecycle.State]struct{}, len(states))
	for _, st := range states {
		keep[st] = struct{}{}
	}
	filtered := ordered[:0]
	for _, c := range ordered {
		if _, ok := keep[c.State]; ok {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}
