package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/target/sortparam/internal/service"
)

var errNoSortDefaults = errors.New("sort defaults not found")

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	SortParams   *service.SortParamService   // Required
	SortApply    *service.SortApplyService   // Optional: defaults to a JMESPath-backed service
	SortDefaults *service.SortDefaultsService // Optional: omit to disable /api/sort-defaults
	HealthChecks []HealthCheck
	Logger       *slog.Logger
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	if services.SortParams == nil {
		panic("sort param service is required")
	}
	apply := services.SortApply
	if apply == nil {
		apply = service.NewSortApplyService(service.SortApplyServiceOptions{Logger: services.Logger})
	}

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	health := &HealthHandlers{Checks: services.HealthChecks}
	mux.Handle("GET /readyz", http.HandlerFunc(health.Ready))

	registerSortRoutes(mux, &SortHandlers{Params: services.SortParams, Apply: apply})
	if services.SortDefaults != nil {
		registerSortDefaultsRoutes(mux, &SortDefaultsHandlers{Svc: services.SortDefaults, Params: services.SortParams})
	}
	return mux
}

func registerSortRoutes(mux *http.ServeMux, h *SortHandlers) {
	mux.Handle("GET /api/sort", http.HandlerFunc(h.Resolve))
	mux.Handle("POST /api/sort/fold", http.HandlerFunc(h.Fold))
	mux.Handle("POST /api/sort/apply", http.HandlerFunc(h.ApplySort))
}

func registerSortDefaultsRoutes(mux *http.ServeMux, h *SortDefaultsHandlers) {
	mux.Handle("GET /api/sort-defaults", http.HandlerFunc(h.List))
	mux.Handle("GET /api/sort-defaults/{site}", http.HandlerFunc(h.Get))
	mux.Handle("PUT /api/sort-defaults/{site}", http.HandlerFunc(h.Put))
	mux.Handle("DELETE /api/sort-defaults/{site}", http.HandlerFunc(h.Delete))
	mux.Handle("GET /api/sort-defaults/{site}/resolved", http.HandlerFunc(h.Resolve))
}
