package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/ariafatah0711/ctfs-sub001/internal/domain"
)

const (
	// MaintenanceCookie carries the maintenance reason to the maintenance page.
	MaintenanceCookie = "maintenance-type"
	// PathnameHeader records the resolved request path on passed-through responses.
	PathnameHeader = "x-pathname"

	maintenanceCookieMaxAge = 300
	maintenanceTypeUnknown  = "unknown"
)

// MaintenanceChecker reports whether the platform is in maintenance.
type MaintenanceChecker interface {
	Check(ctx context.Context) domain.MaintenanceStatus
}

// MaintenanceRoutes names the paths the maintenance middleware treats
// specially. Exempt entries ending in "/" match as prefixes.
type MaintenanceRoutes struct {
	PagePath string
	HomePath string
	Exempt   []string
}

func (m MaintenanceRoutes) withDefaults() MaintenanceRoutes {
	if m.PagePath == "" {
		m.PagePath = "/maintenance"
	}
	if m.HomePath == "" {
		m.HomePath = "/"
	}
	return m
}

func (m MaintenanceRoutes) exempt(path string) bool {
	for _, entry := range m.Exempt {
		if entry == "" {
			continue
		}
		if strings.HasSuffix(entry, "/") {
			if strings.HasPrefix(path, entry) {
				return true
			}
			continue
		}
		if path == entry {
			return true
		}
	}
	return false
}

// Maintenance redirects traffic to the maintenance page while the gate is
// active and away from it once maintenance ends.
func Maintenance(gate MaintenanceChecker, routes MaintenanceRoutes, next http.Handler) http.Handler {
	routes = routes.withDefaults()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if routes.exempt(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		status := gate.Check(r.Context())
		onPage := r.URL.Path == routes.PagePath

		switch {
		case status.Active && !onPage:
			http.SetCookie(w, &http.Cookie{
				Name:     MaintenanceCookie,
				Value:    maintenanceCookieValue(status.ErrorType),
				Path:     "/",
				MaxAge:   maintenanceCookieMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			// Query parameters are dropped.
			http.Redirect(w, r, routes.PagePath, http.StatusTemporaryRedirect)
			return
		case !status.Active && onPage:
			http.SetCookie(w, &http.Cookie{
				Name:   MaintenanceCookie,
				Value:  "",
				Path:   "/",
				MaxAge: -1,
			})
			http.Redirect(w, r, routes.HomePath, http.StatusTemporaryRedirect)
			return
		}

		w.Header().Set(PathnameHeader, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func maintenanceCookieValue(t domain.MaintenanceErrorType) string {
	switch t {
	case domain.MaintenanceErrorManual, domain.MaintenanceErrorDatabase:
		return string(t)
	default:
		return maintenanceTypeUnknown
	}
}

type maintenancePageResponse struct {
	Maintenance bool   `json:"maintenance"`
	Type        string `json:"type"`
	Message     string `json:"message"`
}

// MaintenancePageHandler renders the maintenance notice using the reason
// stored in the maintenance cookie.
func MaintenancePageHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		kind := maintenanceTypeUnknown
		if cookie, err := r.Cookie(MaintenanceCookie); err == nil && cookie.Value != "" {
			kind = cookie.Value
		}

		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Retry-After", "30")
		writeJSON(w, http.StatusServiceUnavailable, maintenancePageResponse{
			Maintenance: true,
			Type:        kind,
			Message:     maintenanceMessage(kind),
		})
	})
}

func maintenanceMessage(kind string) string {
	switch kind {
	case string(domain.MaintenanceErrorManual):
		return "The platform is undergoing scheduled maintenance. Please check back soon."
	case string(domain.MaintenanceErrorDatabase):
		return "The platform cannot reach its database right now. We are working on it."
	default:
		return "The platform is temporarily unavailable."
	}
}
