package app

import (
	"context"
	"strings"
	"time"

	"github.com/ariafatah0711/ctfs-sub001/internal/clock"
	"github.com/ariafatah0711/ctfs-sub001/internal/domain"
	"github.com/ariafatah0711/ctfs-sub001/internal/lifecycle"
)

type EventRepository interface {
	CreateEvent(ctx context.Context, event domain.Event) error
	ListEvents(ctx context.Context) ([]domain.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

type AdminService struct {
	repo  EventRepository
	clock clock.Clock
}

func NewAdminService(repo EventRepository, clk clock.Clock) *AdminService {
	return &AdminService{
		repo:  repo,
		clock: clk,
	}
}

type CreateEventInput struct {
	Name      string
	StartTime *time.Time
	EndTime   *time.Time
}

func (s *AdminService) CreateEvent(ctx context.Context, in CreateEventInput) (domain.Event, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Event{}, domain.ErrEventNameRequired
	}
	if in.StartTime != nil && in.EndTime != nil && in.StartTime.After(*in.EndTime) {
		return domain.Event{}, domain.ErrInvalidTimeRange
	}

	event := domain.Event{
		ID:        newUUID(),
		Name:      name,
		StartTime: domain.FormatTimestamp(in.StartTime),
		EndTime:   domain.FormatTimestamp(in.EndTime),
	}

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

// ListEvents returns every event in display order with its current state.
func (s *AdminService) ListEvents(ctx context.Context) ([]lifecycle.Classified, error) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	return lifecycle.OrderClassified(events, s.clock.Now()), nil
}

func (s *AdminService) DeleteEvent(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	return s.repo.DeleteEvent(ctx, id)
}
