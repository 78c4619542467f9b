package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func baseRouter(log *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger(log))             // structured access log
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", HealthCheck)
	return r
}

// Router assembles the main service API.
func (h *Handler) Router(log *slog.Logger) chi.Router {
	r := baseRouter(log)

	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.PublicEvents)
		r.Get("/{id}", h.PublicEvent)
		r.Get("/{id}/comments", h.PublicComments)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.PublicCategories)
		r.Get("/{catId}", h.PublicCategory)
	})

	r.Route("/compilations", func(r chi.Router) {
		r.Get("/", h.PublicCompilations)
		r.Get("/{compId}", h.PublicCompilation)
	})

	r.Route("/users/{userId}", func(r chi.Router) {
		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.OwnEvents)
			r.Post("/", h.CreateEvent)
			r.Get("/{eventId}", h.OwnEvent)
			r.Patch("/{eventId}", h.UpdateOwnEvent)
			r.Get("/{eventId}/requests", h.EventRequests)
			r.Patch("/{eventId}/requests", h.ModerateRequests)
			r.Post("/{eventId}/comments", h.CreateComment)
		})
		r.Route("/requests", func(r chi.Router) {
			r.Get("/", h.OwnRequests)
			r.Post("/", h.CreateRequest)
			r.Patch("/{requestId}/cancel", h.CancelRequest)
		})
		r.Get("/comments", h.OwnComments)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.AdminUsers)
			r.Post("/", h.AdminCreateUser)
			r.Delete("/{userId}", h.AdminDeleteUser)
		})
		r.Route("/categories", func(r chi.Router) {
			r.Post("/", h.AdminCreateCategory)
			r.Patch("/{catId}", h.AdminUpdateCategory)
			r.Delete("/{catId}", h.AdminDeleteCategory)
		})
		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.AdminEvents)
			r.Patch("/{eventId}", h.AdminUpdateEvent)
		})
		r.Route("/compilations", func(r chi.Router) {
			r.Post("/", h.AdminCreateCompilation)
			r.Patch("/{compId}", h.AdminUpdateCompilation)
			r.Delete("/{compId}", h.AdminDeleteCompilation)
		})
		r.Delete("/comments/{commentId}", h.AdminDeleteComment)
	})

	return r
}

// Router assembles the stats service API.
func (h *StatsHandler) Router(log *slog.Logger) chi.Router {
	r := baseRouter(log)

	r.Post("/hit", h.RecordHit)
	r.Get("/stats", h.Stats)

	return r
}
