package lifecycle

import (
	"reflect"
	"testing"

	"github.com/ariafatah0711/ctfs-sub001/internal/domain"
)

func ids(events []domain.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

func TestOrder_PermanentBeforeUpcoming(t *testing.T) {
	t.Parallel()

	events := []domain.Event{
		{ID: "e2", StartTime: "2030-01-01T00:00:00Z"},
		{ID: "e1"},
	}
	now := mustTime(t, "2025-01-01T00:00:00Z")

	got := ids(Order(events, now))
	want := []string{"e1", "e2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestOrder_GroupsAndSecondaryKeys(t *testing.T) {
	t.Parallel()

	now := mustTime(t, "2025-01-01T00:00:00Z")
	events := []domain.Event{
		{ID: "ended-old", Name: "A", EndTime: "2023-01-01T00:00:00Z"},
		{ID: "ended-recent", Name: "B", EndTime: "2024-12-01T00:00:00Z"},
		{ID: "upcoming-late", Name: "A", StartTime: "2026-01-01T00:00:00Z"},
		{ID: "upcoming-soon", Name: "Z", StartTime: "2025-02-01T00:00:00Z"},
		{ID: "ongoing-open", Name: "A", StartTime: "2024-01-01T00:00:00Z"},
		{ID: "ongoing-soon", Name: "Z", StartTime: "2024-01-01T00:00:00Z", EndTime: "2025-01-02T00:00:00Z"},
		{ID: "ongoing-later", Name: "B", EndTime: "2025-03-01T00:00:00Z"},
		{ID: "perm-b", Name: "beta"},
		{ID: "perm-a", Name: "Alpha"},
	}

	got := ids(Order(events, now))
	want := []string{
		"perm-a", "perm-b",
		"ongoing-soon", "ongoing-later", "ongoing-open",
		"upcoming-soon", "upcoming-late",
		"ended-recent", "ended-old",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestOrder_NameTiebreakIsCaseSensitive(t *testing.T) {
	t.Parallel()

	now := mustTime(t, "2025-01-01T00:00:00Z")
	events := []domain.Event{
		{ID: "lower", Name: "alpha"},
		{ID: "upper", Name: "Beta"},
	}

	got := ids(Order(events, now))
	want := []string{"upper", "lower"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestOrder_DeterministicUnderPermutation(t *testing.T) {
	t.Parallel()

	now := mustTime(t, "2025-01-01T00:00:00Z")
	events := []domain.Event{
		{ID: "a", Name: "Same"},
		{ID: "b", Name: "Same"},
		{ID: "c", Name: "Same", EndTime: "2024-01-01T00:00:00Z"},
		{ID: "d", Name: "Same", EndTime: "2024-01-01T00:00:00Z"},
		{ID: "e", Name: "Same", StartTime: "2026-01-01T00:00:00Z"},
		{ID: "f", Name: "Same", StartTime: "2026-01-01T00:00:00Z"},
		{ID: "g", Name: "Same", StartTime: "bad", EndTime: "2026-01-01T00:00:00Z"},
	}
	reversed := make([]domain.Event, len(events))
	for i, e := range events {
		reversed[len(events)-1-i] = e
	}
	rotated := append(append([]domain.Event{}, events[3:]...), events[:3]...)

	first := ids(Order(events, now))
	for _, perm := range [][]domain.Event{reversed, rotated} {
		if got := ids(Order(perm, now)); !reflect.DeepEqual(got, first) {
			t.Fatalf("expected %v, got %v", first, got)
		}
	}
}

func TestOrder_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	now := mustTime(t, "2025-01-01T00:00:00Z")
	events := []domain.Event{
		{ID: "ended", EndTime: "2020-01-01T00:00:00Z"},
		{ID: "perm"},
	}

	_ = Order(events, now)
	if events[0].ID != "ended" || events[1].ID != "perm" {
		t.Fatalf("input reordered: %v", ids(events))
	}
}

func TestGroup(t *testing.T) {
	t.Parallel()

	now := mustTime(t, "2025-01-01T00:00:00Z")
	events := []domain.Event{
		{ID: "perm"},
		{ID: "ended-1", EndTime: "2024-01-01T00:00:00Z"},
		{ID: "ended-2", EndTime: "2024-06-01T00:00:00Z"},
	}

	groups := Group(OrderClassified(events, now))
	if got := ids(groups[StatePermanent]); !reflect.DeepEqual(got, []string{"perm"}) {
		t.Fatalf("unexpected permanent group %v", got)
	}
	if got := ids(groups[StateEnded]); !reflect.DeepEqual(got, []string{"ended-2", "ended-1"}) {
		t.Fatalf("unexpected ended group %v", got)
	}
	if len(groups[StateOngoing]) != 0 {
		t.Fatalf("expected no ongoing events, got %v", ids(groups[StateOngoing]))
	}
}
