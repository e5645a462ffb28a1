package domain

// SelectionKind tags the variants of a resolved event selection.
type SelectionKind string

const (
	SelectionAll     SelectionKind = "all"
	SelectionMain    SelectionKind = "main"
	SelectionByID    SelectionKind = "event"
	SelectionUnknown SelectionKind = "unknown"
)

// Reserved selection values.
const (
	SelectionValueAll  = "all"
	SelectionValueMain = "main"
)

// Selection is a stored selection string resolved against the live event
// list. Unknown keeps the raw value so callers can render it as a
// placeholder instead of replacing it.
type Selection struct {
	Kind    SelectionKind
	EventID string
	Raw     string
}

// IsKnown reports whether the selection still maps to an available option.
func (s Selection) IsKnown() bool {
	return s.Kind != SelectionUnknown
}

// EventFilter returns the event id to scope queries to. The second result is
// false when no event filter applies (All). Main filters on the legacy null
// event id, reported as ("", true).
func (s Selection) EventFilter() (string, bool) {
	switch s.Kind {
	case SelectionMain:
		return "", true
	case SelectionByID:
		return s.EventID, true
	default:
		return "", false
	}
}
