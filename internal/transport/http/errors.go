package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeInvalidStartTime   = "invalid_start_time"
	codeInvalidEndTime     = "invalid_end_time"
	codeInvalidTimeRange   = "invalid_time_range"
	codeInvalidState       = "invalid_state"
	codeInvalidID          = "invalid_id"
	codeEventNameRequired  = "event_name_required"
	codeEventNotFound      = "event_not_found"
	codeEventAlreadyExists = "event_already_exists"
	codeSelectionRequired  = "selection_required"
	codeUnauthorized       = "unauthorized"
	codeForbidden          = "forbidden"
	codeMaintenance        = "maintenance"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
