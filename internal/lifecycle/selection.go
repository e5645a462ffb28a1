package lifecycle

import (
	"time"

	"github.com/ariafatah0711/ctfs-sub001/internal/domain"
)

// SelectionOptions lists which reserved selections the caller offers.
type SelectionOptions struct {
	ShowAll  bool
	ShowMain bool
}

// ResolveSelection maps a stored selection string onto the current events.
// A value that matches nothing on offer resolves to SelectionUnknown with
// the raw value kept; it is never swapped for a default.
func ResolveSelection(raw string, events []domain.Event, opts SelectionOptions) domain.Selection {
	switch raw {
	case domain.SelectionValueAll:
		if opts.ShowAll {
			return domain.Selection{Kind: domain.SelectionAll, Raw: raw}
		}
	case domain.SelectionValueMain:
		if opts.ShowMain {
			return domain.Selection{Kind: domain.SelectionMain, Raw: raw}
		}
	default:
		for _, event := range events {
			if event.ID == raw {
				return domain.Selection{Kind: domain.SelectionByID, EventID: raw, Raw: raw}
			}
		}
	}
	return domain.Selection{Kind: domain.SelectionUnknown, Raw: raw}
}

// DefaultSelection is the selection offered when nothing is stored: main,
// then all, then the first event in display order.
func DefaultSelection(events []domain.Event, now time.Time, opts SelectionOptions) domain.Selection {
	switch {
	case opts.ShowMain:
		return domain.Selection{Kind: domain.SelectionMain, Raw: domain.SelectionValueMain}
	case opts.ShowAll:
		return domain.Selection{Kind: domain.SelectionAll, Raw: domain.SelectionValueAll}
	}
	ordered := Order(events, now)
	if len(ordered) == 0 {
		return domain.Selection{Kind: domain.SelectionUnknown}
	}
	id := ordered[0].ID
	return domain.Selection{Kind: domain.SelectionByID, EventID: id, Raw: id}
}
