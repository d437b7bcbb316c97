package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alpengrip/cruxsync/internal/metrics"
)

// NewRouter wires all routes. Everything under /api requires a valid
// session token.
func NewRouter(h *Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(RequestID)
	router.Use(metrics.Middleware)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Post("/auth/register", h.Register)
	router.Post("/auth/login", h.Login)

	router.Route("/api", func(r chi.Router) {
		r.Use(h.Authenticated)

		r.Post("/auth/logout", h.Logout)

		r.Get("/gyms", h.ListGyms)
		r.Post("/gyms/sync", h.SyncGyms)
		r.Get("/gyms/{gymID}", h.GetGym)
		r.Post("/gyms/{gymID}/pin", h.PinGym)
		r.Delete("/gyms/{gymID}/pin", h.UnpinGym)
		r.Get("/gyms/{gymID}/spraywalls", h.ListSpraywalls)
		r.Post("/gyms/{gymID}/spraywalls/sync", h.SyncSpraywalls)
		r.Get("/spraywalls/{spraywallID}/boulders", h.ListBoulders)
		r.Post("/spraywalls/{spraywallID}/boulders/sync", h.SyncBoulders)

		r.Post("/cache/evict", h.EvictStale)
	})

	return router
}
