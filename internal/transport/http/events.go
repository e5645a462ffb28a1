package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/ariafatah0711/ctfs-sub001/internal/lifecycle"
)

// EventLister is the minimal interface needed for the public event listing.
type EventLister interface {
	ListEvents(ctx context.Context, states ...lifecycle.State) ([]lifecycle.Classified, error)
}

type eventResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	State     string  `json:"state"`
}

func toEventResponse(c lifecycle.Classified) eventResponse {
	return eventResponse{
		ID:        c.Event.ID,
		Name:      c.Event.Name,
		StartTime: optionalString(c.Event.StartTime),
		EndTime:   optionalString(c.Event.EndTime),
		State:     string(c.State),
	}
}

func toEventResponses(classified []lifecycle.Classified) []eventResponse {
	resp := make([]eventResponse, 0, len(classified))
	for _, c := range classified {
		resp = append(resp, toEventResponse(c))
	}
	return resp
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type groupedEventsResponse struct {
	Permanent []eventResponse `json:"permanent"`
	Ongoing   []eventResponse `json:"ongoing"`
	Upcoming  []eventResponse `json:"upcoming"`
	Ended     []eventResponse `json:"ended"`
}

func toGroupedResponse(classified []lifecycle.Classified) groupedEventsResponse {
	groups := lifecycle.Group(classified)
	bucket := func(st lifecycle.State) []eventResponse {
		resp := make([]eventResponse, 0, len(groups[st]))
		for _, event := range groups[st] {
			resp = append(resp, toEventResponse(lifecycle.Classified{Event: event, State: st}))
		}
		return resp
	}
	return groupedEventsResponse{
		Permanent: bucket(lifecycle.StatePermanent),
		Ongoing:   bucket(lifecycle.StateOngoing),
		Upcoming:  bucket(lifecycle.StateUpcoming),
		Ended:     bucket(lifecycle.StateEnded),
	}
}

// HandleListEvents returns events in display order. The state query
// parameter accepts a comma-separated list of lifecycle states; grouped=1
// buckets the result by state instead of returning a flat list.
func HandleListEvents(svc EventLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		states, ok := parseStates(r.URL.Query().Get("state"))
		if !ok {
			writeError(w, http.StatusBadRequest, codeInvalidState, "invalid state")
			return
		}

		classified, err := svc.ListEvents(r.Context(), states...)
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}
		if queryFlag(r.URL.Query().Get("grouped")) {
			writeJSON(w, http.StatusOK, toGroupedResponse(classified))
			return
		}
		writeJSON(w, http.StatusOK, toEventResponses(classified))
	}
}

func parseStates(raw string) ([]lifecycle.State, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, true
	}
	var states []lifecycle.State
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		st, ok := lifecycle.ParseState(part)
		if !ok {
			return nil, false
		}
		states = append(states, st)
	}
	return states, true
}
