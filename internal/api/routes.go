package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func SetupRoutes(handler *Handler) *chi.Mux {
	r := chi.NewRouter()

	for _, middleware := range SetupMiddleware() {
		r.Use(middleware)
	}
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/health", handler.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/stats", handler.GetStats)
		r.Get("/poi", handler.GetPOI)
		r.Post("/scan", handler.StartScan)
		r.Get("/scan", handler.GetScan)
		r.Get("/chunks/{x}/{z}", handler.GetChunk)
	})

	return r
}
