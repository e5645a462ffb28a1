package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ariafatah0711/ctfs-sub001/internal/app"
	"github.com/ariafatah0711/ctfs-sub001/internal/domain"
	"github.com/ariafatah0711/ctfs-sub001/internal/lifecycle"
)

// SelectionService is the minimal interface needed for selection endpoints.
type SelectionService interface {
	Resolve(ctx context.Context, userKey string, opts lifecycle.SelectionOptions) (app.SelectionResult, error)
	Save(ctx context.Context, userKey, raw string) error
	Clear(ctx context.Context, userKey string) error
}

type selectionResponse struct {
	Kind    string           `json:"kind"`
	EventID *string          `json:"event_id"`
	Value   string           `json:"value"`
	Known   bool             `json:"known"`
	Stored  bool             `json:"stored"`
	Filter  *selectionFilter `json:"filter"`
	Events  []eventResponse  `json:"events"`
}

// selectionFilter scopes event-bound queries. A null event_id selects
// records that belong to no event. A null filter means no scoping.
type selectionFilter struct {
	EventID *string `json:"event_id"`
}

func toSelectionFilter(sel domain.Selection) *selectionFilter {
	eventID, ok := sel.EventFilter()
	if !ok {
		return nil
	}
	return &selectionFilter{EventID: optionalString(eventID)}
}

type updateSelectionRequest struct {
	Selection string `json:"selection"`
}

// HandleSelection resolves (GET), stores (PUT) or forgets (DELETE) the
// caller's event selection. The all and main query flags enable the
// matching options.
func HandleSelection(svc SelectionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			resolveSelection(w, r, svc)
		case http.MethodPut:
			var req updateSelectionRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			if err := svc.Save(r.Context(), userKey(r), req.Selection); err != nil {
				switch {
				case errors.Is(err, domain.ErrSelectionRequired):
					writeError(w, http.StatusBadRequest, codeSelectionRequired, err.Error())
				case errors.Is(err, domain.ErrInvalidID):
					writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
				default:
					writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				}
				return
			}
			resolveSelection(w, r, svc)
		case http.MethodDelete:
			if err := svc.Clear(r.Context(), userKey(r)); err != nil {
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			resolveSelection(w, r, svc)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func resolveSelection(w http.ResponseWriter, r *http.Request, svc SelectionService) {
	query := r.URL.Query()
	opts := lifecycle.SelectionOptions{
		ShowAll:  queryFlag(query.Get("all")),
		ShowMain: queryFlag(query.Get("main")),
	}

	res, err := svc.Resolve(r.Context(), userKey(r), opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}

	sel := res.Selection
	writeJSON(w, http.StatusOK, selectionResponse{
		Kind:    string(sel.Kind),
		EventID: optionalString(sel.EventID),
		Value:   sel.Raw,
		Known:   sel.IsKnown(),
		Stored:  res.Stored,
		Filter:  toSelectionFilter(sel),
		Events:  toEventResponses(res.Events),
	})
}

func queryFlag(v string) bool {
	switch v {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
