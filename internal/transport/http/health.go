package http

import (
	stdhttp "net/http"

	"github.com/ariafatah0711/ctfs-sub001/internal/maintenance"
)

// ModeReporter exposes the configured maintenance mode.
type ModeReporter interface {
	Mode() maintenance.Mode
}

type healthResponse struct {
	Status      string `json:"status"`
	Maintenance string `json:"maintenance_mode"`
}

// HandleHealth reports liveness and the configured maintenance mode. It
// never probes the backend.
func HandleHealth(gate ModeReporter) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if r.Method != stdhttp.MethodGet && r.Method != stdhttp.MethodHead {
			writeError(w, stdhttp.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		mode := maintenance.ModeOff
		if gate != nil {
			mode = gate.Mode()
		}
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, stdhttp.StatusOK, healthResponse{
			Status:      "ok",
			Maintenance: string(mode),
		})
	}
}
