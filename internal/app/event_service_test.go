package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ariafatah0711/ctfs-sub001/internal/clock"
	"github.com/ariafatah0711/ctfs-sub001/internal/domain"
	"github.com/ariafatah0711/ctfs-sub001/internal/lifecycle"
)

func TestEventService_ListEvents_FilterByState(t *testing.T) {
	repo := &fakeEventRepo{events: []domain.Event{
		{ID: "up-2", Name: "B", StartTime: "2026-01-01T00:00:00Z"},
		{ID: "ended", EndTime: "2024-01-01T00:00:00Z"},
		{ID: "up-1", Name: "A", StartTime: "2025-06-01T00:00:00Z"},
		{ID: "perm"},
	}}
	svc := NewEventService(repo, clock.NewFixed(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))

	all, err := svc.ListEvents(context.Background())
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(all) != 4 || all[0].Event.ID != "perm" {
		t.Fatalf("unexpected ordering %+v", all)
	}

	upcoming, err := svc.ListEvents(context.Background(), lifecycle.StateUpcoming)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(upcoming) != 2 || upcoming[0].Event.ID != "up-1" || upcoming[1].Event.ID != "up-2" {
		t.Fatalf("unexpected upcoming events %+v", upcoming)
	}
}

func TestEventService_ListEvents_Error(t *testing.T) {
	repo := &fakeEventRepo{listErr: errors.New("db down")}
	svc := NewEventService(repo, clock.NewFixed(time.Now()))

	if _, err := svc.ListEvents(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
