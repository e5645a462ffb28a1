package domain

import (
	"strings"
	"time"
)

// Event is a competition event as stored by the backend.
// StartTime and EndTime hold the backend's ISO-8601 strings; an empty
// string means the bound is not defined.
type Event struct {
	ID        string
	Name      string
	StartTime string
	EndTime   string
}

// Start returns the parsed start bound. Unparseable values count as absent.
func (e Event) Start() (time.Time, bool) {
	return ParseTimestamp(e.StartTime)
}

// End returns the parsed end bound. Unparseable values count as absent.
func (e Event) End() (time.Time, bool) {
	return ParseTimestamp(e.EndTime)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp parses the timestamp shapes the backend emits. Values
// without a zone are read as UTC.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders t the way events are stored; nil yields "".
func FormatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
