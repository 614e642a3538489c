// Package httptransport assembles the public HTTP surface: shared middleware,
// health and metrics endpoints, and the gate module routes.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	gateHandler "foiagate/internal/gate/handler"
	"foiagate/internal/platform/logger"
	"foiagate/internal/platform/metrics"
	"foiagate/pkg/platform/httputil"
	"foiagate/pkg/platform/middleware/requestid"
	"foiagate/pkg/platform/middleware/requesttime"
)

// NewRouter wires all public endpoints. Handlers delegate to the gate service
// without embedding classification logic.
func NewRouter(svc gateHandler.Service, m *metrics.Metrics) chi.Router {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(m.Middleware)

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	gateHandler.New(svc, logger.New("gate.handler")).Register(r)
	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
