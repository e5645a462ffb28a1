package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ariafatah0711/ctfs-sub001/internal/domain"
	"github.com/ariafatah0711/ctfs-sub001/internal/maintenance"
)

type stubChecker struct {
	status domain.MaintenanceStatus
	calls  atomic.Int32
}

func (s *stubChecker) Check(context.Context) domain.MaintenanceStatus {
	s.calls.Add(1)
	return s.status
}

var testRoutes = MaintenanceRoutes{
	PagePath: "/maintenance",
	HomePath: "/",
	Exempt:   []string{"/health", "/metrics", "/static/"},
}

func teapot() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == MaintenanceCookie {
			return c
		}
	}
	return nil
}

func TestMaintenance_ActiveRedirectsAndSetsCookie(t *testing.T) {
	cases := []struct {
		name      string
		errorType domain.MaintenanceErrorType
		want      string
	}{
		{name: "manual", errorType: domain.MaintenanceErrorManual, want: "manual"},
		{name: "database", errorType: domain.MaintenanceErrorDatabase, want: "database"},
		{name: "unspecified", errorType: domain.MaintenanceErrorNone, want: "unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checker := &stubChecker{status: domain.MaintenanceStatus{Active: true, ErrorType: tc.errorType}}
			handler := Maintenance(checker, testRoutes, teapot())

			req := httptest.NewRequest(http.MethodGet, "/challenges?category=web&page=2", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusTemporaryRedirect {
				t.Fatalf("expected status 307, got %d", rec.Code)
			}
			if got := rec.Header().Get("Location"); got != "/maintenance" {
				t.Fatalf("expected redirect to /maintenance without query, got %q", got)
			}
			cookie := findCookie(t, rec)
			if cookie == nil {
				t.Fatalf("expected %s cookie", MaintenanceCookie)
			}
			if cookie.Value != tc.want {
				t.Fatalf("expected cookie value %q, got %q", tc.want, cookie.Value)
			}
			if cookie.MaxAge != 300 {
				t.Fatalf("expected max age 300, got %d", cookie.MaxAge)
			}
			if cookie.Path != "/" {
				t.Fatalf("expected cookie path /, got %q", cookie.Path)
			}
		})
	}
}

func TestMaintenance_ActiveOnPagePassesThrough(t *testing.T) {
	checker := &stubChecker{status: domain.MaintenanceStatus{Active: true, ErrorType: domain.MaintenanceErrorDatabase}}
	handler := Maintenance(checker, testRoutes, teapot())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/maintenance", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected passthrough, got %d", rec.Code)
	}
	if got := rec.Header().Get(PathnameHeader); got != "/maintenance" {
		t.Fatalf("expected pathname header, got %q", got)
	}
}

func TestMaintenance_InactiveLeavesPage(t *testing.T) {
	checker := &stubChecker{}
	handler := Maintenance(checker, testRoutes, teapot())

	req := httptest.NewRequest(http.MethodGet, "/maintenance", nil)
	req.AddCookie(&http.Cookie{Name: MaintenanceCookie, Value: "database"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected status 307, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/" {
		t.Fatalf("expected redirect home, got %q", got)
	}
	cookie := findCookie(t, rec)
	if cookie == nil || cookie.MaxAge >= 0 {
		t.Fatalf("expected cookie to be cleared, got %+v", cookie)
	}
}

func TestMaintenance_InactivePassesThroughWithPathname(t *testing.T) {
	checker := &stubChecker{}
	handler := Maintenance(checker, testRoutes, teapot())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/events?state=ongoing", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected passthrough, got %d", rec.Code)
	}
	if got := rec.Header().Get(PathnameHeader); got != "/api/events" {
		t.Fatalf("expected pathname /api/events, got %q", got)
	}
	if findCookie(t, rec) != nil {
		t.Fatalf("expected no maintenance cookie")
	}
}

func TestMaintenance_ExemptPathsSkipGate(t *testing.T) {
	checker := &stubChecker{status: domain.MaintenanceStatus{Active: true, ErrorType: domain.MaintenanceErrorManual}}
	handler := Maintenance(checker, testRoutes, teapot())

	for _, path := range []string{"/health", "/metrics", "/static/app.js"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusTeapot {
			t.Fatalf("%s: expected passthrough, got %d", path, rec.Code)
		}
	}
	if got := checker.calls.Load(); got != 0 {
		t.Fatalf("expected no gate checks, got %d", got)
	}
}

func TestMaintenance_ManualGateNeverProbes(t *testing.T) {
	var probes atomic.Int32
	gate, err := maintenance.NewGate(maintenance.ParseMode("yes"), maintenance.ProberFunc(func(context.Context) error {
		probes.Add(1)
		return nil
	}))
	if err != nil {
		t.Fatalf("new gate: %v", err)
	}
	handler := Maintenance(gate, testRoutes, teapot())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scoreboard", nil))
		if rec.Code != http.StatusTemporaryRedirect {
			t.Fatalf("expected redirect, got %d", rec.Code)
		}
		if c := findCookie(t, rec); c == nil || c.Value != "manual" {
			t.Fatalf("expected manual cookie, got %+v", c)
		}
	}
	if got := probes.Load(); got != 0 {
		t.Fatalf("expected zero probes, got %d", got)
	}
}

func TestMaintenancePageHandler(t *testing.T) {
	cases := []struct {
		name   string
		cookie string
		want   string
	}{
		{name: "manual", cookie: "manual", want: "manual"},
		{name: "database", cookie: "database", want: "database"},
		{name: "missing", cookie: "", want: "unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/maintenance", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: MaintenanceCookie, Value: tc.cookie})
			}
			rec := httptest.NewRecorder()
			MaintenancePageHandler().ServeHTTP(rec, req)

			if rec.Code != http.StatusServiceUnavailable {
				t.Fatalf("expected status 503, got %d", rec.Code)
			}
			var resp maintenancePageResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Type != tc.want {
				t.Fatalf("expected type %q, got %q", tc.want, resp.Type)
			}
			if resp.Message == "" {
				t.Fatalf("expected a message")
			}
		})
	}
}

func TestMaintenance_RedirectsBeforeIdentityCheck(t *testing.T) {
	checker := &stubChecker{status: domain.MaintenanceStatus{Active: true, ErrorType: domain.MaintenanceErrorDatabase}}
	handler := Maintenance(checker, testRoutes, Identity(testSecret, nil, teapot()))

	req := httptest.NewRequest(http.MethodGet, "/api/events/selection", nil)
	req.Header.Set("Authorization", "Bearer expired-or-forged")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected maintenance redirect, got %d", rec.Code)
	}
	if c := findCookie(t, rec); c == nil || c.Value != "database" {
		t.Fatalf("expected database cookie, got %+v", c)
	}

	checker.status = domain.MaintenanceStatus{}
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 once maintenance ends, got %d", rec.Code)
	}
}
