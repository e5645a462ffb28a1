package app

import (
	"context"
	"strings"

	"github.com/ariafatah0711/ctfs-sub001/internal/clock"
	"github.com/ariafatah0711/ctfs-sub001/internal/domain"
	"github.com/ariafatah0711/ctfs-sub001/internal/lifecycle"
	"github.com/ariafatah0711/ctfs-sub001/internal/observability/metrics"
)

// AnonymousUserKey keys the selection of callers without an identity.
const AnonymousUserKey = "anonymous"

const maxSelectionLength = 128

type SelectionStore interface {
	GetSelection(ctx context.Context, userKey string) (string, bool, error)
	SetSelection(ctx context.Context, userKey, value string) error
	ClearSelection(ctx context.Context, userKey string) error
}

type SelectionService struct {
	store  SelectionStore
	events EventLister
	clock  clock.Clock
}

func NewSelectionService(store SelectionStore, events EventLister, clk clock.Clock) *SelectionService {
	return &SelectionService{
		store:  store,
		events: events,
		clock:  clk,
	}
}

// SelectionResult is a resolved selection plus the options it was
// resolved against.
type SelectionResult struct {
	Selection domain.Selection
	Stored    bool
	Events    []lifecycle.Classified
}

// Resolve loads the caller's stored selection and resolves it against the
// current events. With nothing stored the default selection is returned.
func (s *SelectionService) Resolve(ctx context.Context, userKey string, opts lifecycle.SelectionOptions) (SelectionResult, error) {
	userKey = normalizeUserKey(userKey)

	raw, stored, err := s.store.GetSelection(ctx, userKey)
	if err != nil {
		return SelectionResult{}, err
	}
	events, err := s.events.ListEvents(ctx)
	if err != nil {
		return SelectionResult{}, err
	}

	now := s.clock.Now()
	var sel domain.Selection
	if stored {
		sel = lifecycle.ResolveSelection(raw, events, opts)
	} else {
		sel = lifecycle.DefaultSelection(events, now, opts)
	}
	metrics.IncSelectionResolution(string(sel.Kind))

	return SelectionResult{
		Selection: sel,
		Stored:    stored,
		Events:    lifecycle.OrderClassified(events, now),
	}, nil
}

// Save stores raw as the caller's selection. The value is not checked
// against the current events.
func (s *SelectionService) Save(ctx context.Context, userKey, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.ErrSelectionRequired
	}
	if len(raw) > maxSelectionLength {
		return domain.ErrInvalidID
	}
	return s.store.SetSelection(ctx, normalizeUserKey(userKey), raw)
}

// Clear forgets the caller's selection.
func (s *SelectionService) Clear(ctx context.Context, userKey string) error {
	return s.store.ClearSelection(ctx, normalizeUserKey(userKey))
}

func normalizeUserKey(userKey string) string {
	userKey = strings.TrimSpace(userKey)
	if userKey == "" {
		return AnonymousUserKey
	}
	return userKey
}
