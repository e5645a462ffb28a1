package lifecycle

import (
	"testing"

	"github.com/ariafatah0711/ctfs-sub001/internal/domain"
)

func TestResolveSelection(t *testing.T) {
	t.Parallel()

	events := []domain.Event{{ID: "evt-1"}, {ID: "evt-2"}}

	tests := []struct {
		name      string
		raw       string
		opts      SelectionOptions
		wantKind  domain.SelectionKind
		wantKnown bool
	}{
		{"all enabled", "all", SelectionOptions{ShowAll: true}, domain.SelectionAll, true},
		{"all disabled", "all", SelectionOptions{ShowMain: true}, domain.SelectionUnknown, false},
		{"main enabled", "main", SelectionOptions{ShowMain: true}, domain.SelectionMain, true},
		{"main disabled", "main", SelectionOptions{ShowAll: true}, domain.SelectionUnknown, false},
		{"known event", "evt-2", SelectionOptions{}, domain.SelectionByID, true},
		{"missing event", "evt-404", SelectionOptions{ShowAll: true, ShowMain: true}, domain.SelectionUnknown, false},
		{"empty value", "", SelectionOptions{ShowAll: true}, domain.SelectionUnknown, false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ResolveSelection(tc.raw, events, tc.opts)
			if got.Kind != tc.wantKind {
				t.Fatalf("expected kind %s, got %s", tc.wantKind, got.Kind)
			}
			if got.IsKnown() != tc.wantKnown {
				t.Fatalf("expected known=%v, got %v", tc.wantKnown, got.IsKnown())
			}
			if got.Raw != tc.raw {
				t.Fatalf("expected raw %q kept, got %q", tc.raw, got.Raw)
			}
		})
	}
}

func TestResolveSelection_EventFilter(t *testing.T) {
	t.Parallel()

	events := []domain.Event{{ID: "evt-1"}}

	if _, ok := ResolveSelection("all", events, SelectionOptions{ShowAll: true}).EventFilter(); ok {
		t.Fatalf("expected no filter for all")
	}
	id, ok := ResolveSelection("main", events, SelectionOptions{ShowMain: true}).EventFilter()
	if !ok || id != "" {
		t.Fatalf("expected null event filter for main, got %q %v", id, ok)
	}
	id, ok = ResolveSelection("evt-1", events, SelectionOptions{}).EventFilter()
	if !ok || id != "evt-1" {
		t.Fatalf("expected evt-1 filter, got %q %v", id, ok)
	}
}

func TestDefaultSelection(t *testing.T) {
	t.Parallel()

	now := mustTime(t, "2025-01-01T00:00:00Z")
	events := []domain.Event{
		{ID: "ended", EndTime: "2024-01-01T00:00:00Z"},
		{ID: "live", StartTime: "2024-12-01T00:00:00Z"},
	}

	if got := DefaultSelection(events, now, SelectionOptions{ShowMain: true, ShowAll: true}); got.Kind != domain.SelectionMain {
		t.Fatalf("expected main, got %s", got.Kind)
	}
	if got := DefaultSelection(events, now, SelectionOptions{ShowAll: true}); got.Kind != domain.SelectionAll {
		t.Fatalf("expected all, got %s", got.Kind)
	}
	got := DefaultSelection(events, now, SelectionOptions{})
	if got.Kind != domain.SelectionByID || got.EventID != "live" {
		t.Fatalf("expected live event, got %+v", got)
	}
	if got := DefaultSelection(nil, now, SelectionOptions{}); got.IsKnown() {
		t.Fatalf("expected unknown for empty list, got %+v", got)
	}
}
