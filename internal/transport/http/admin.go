package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ariafatah0711/ctfs-sub001/internal/app"
	"github.com/ariafatah0711/ctfs-sub001/internal/clock"
	"github.com/ariafatah0711/ctfs-sub001/internal/domain"
	"github.com/ariafatah0711/ctfs-sub001/internal/lifecycle"
)

// AdminEventService is the minimal interface needed for admin event endpoints.
type AdminEventService interface {
	CreateEvent(ctx context.Context, in app.CreateEventInput) (domain.Event, error)
	ListEvents(ctx context.Context) ([]lifecycle.Classified, error)
	DeleteEvent(ctx context.Context, id string) error
}

// HandleAdminEvents returns an HTTP handler for admin event creation/listing.
func HandleAdminEvents(svc AdminEventService, clk clock.Clock) http.HandlerFunc {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			classified, err := svc.ListEvents(r.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			writeJSON(w, http.StatusOK, toEventResponses(classified))
			return
		case http.MethodPost:
			var req createEventRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			if strings.TrimSpace(req.Name) == "" {
				writeError(w, http.StatusBadRequest, codeEventNameRequired, domain.ErrEventNameRequired.Error())
				return
			}

			startTime, ok := parseOptionalTime(req.StartTime)
			if !ok {
				writeError(w, http.StatusBadRequest, codeInvalidStartTime, "invalid start_time format")
				return
			}
			endTime, ok := parseOptionalTime(req.EndTime)
			if !ok {
				writeError(w, http.StatusBadRequest, codeInvalidEndTime, "invalid end_time format")
				return
			}

			event, err := svc.CreateEvent(r.Context(), app.CreateEventInput{
				Name:      req.Name,
				StartTime: startTime,
				EndTime:   endTime,
			})
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrEventNameRequired):
					writeError(w, http.StatusBadRequest, codeEventNameRequired, err.Error())
				case errors.Is(err, domain.ErrInvalidTimeRange):
					writeError(w, http.StatusBadRequest, codeInvalidTimeRange, err.Error())
				case errors.Is(err, domain.ErrEventAlreadyExists):
					writeError(w, http.StatusConflict, codeEventAlreadyExists, err.Error())
				default:
					writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				}
				return
			}

			writeJSON(w, http.StatusCreated, toEventResponse(lifecycle.Classified{
				Event: event,
				State: lifecycle.Classify(event, clk.Now()),
			}))
			return
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
	}
}

// HandleAdminEvent returns an HTTP handler for DELETE /admin/events/{id}.
func HandleAdminEvent(svc AdminEventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, ok := parseAdminEventPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		if r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		if err := svc.DeleteEvent(r.Context(), eventID); err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidID):
				writeError(w, http.StatusNotFound, codeInvalidID, err.Error())
			case errors.Is(err, domain.ErrEventNotFound):
				writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type createEventRequest struct {
	Name      string `json:"name"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}

func parseOptionalTime(raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, false
	}
	return &parsed, true
}

func parseAdminEventPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 {
		return "", false
	}
	if parts[0] != "admin" || parts[1] != "events" || parts[2] == "" {
		return "", false
	}
	return parts[2], true
}
