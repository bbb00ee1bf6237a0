// Package httptransport assembles the public HTTP surface: the claimant
// intake endpoints, the staff dashboard and the operational probes.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wathiq/internal/intake"
	"wathiq/internal/platform/middleware"
	"wathiq/internal/staff"
	"wathiq/pkg/platform/httputil"
)

// Deps are the wired feature handlers.
type Deps struct {
	Intake *intake.Handler
	Staff  *staff.Handler
	Logger *slog.Logger

	// Health reports readiness of backing services; nil means always ready.
	Health func() error
}

// NewRouter builds the full route tree.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	deps.Intake.Register(r)
	deps.Staff.Register(r)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if deps.Health != nil {
			if err := deps.Health(); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
				})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
