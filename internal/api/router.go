package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(apiHandler *APIHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling

	r.Get("/health", apiHandler.HealthHandler)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", apiHandler.ListUsersHandler)
		r.Post("/", apiHandler.CreateUserHandler)
	})

	r.Route("/messages", func(r chi.Router) {
		r.Post("/", apiHandler.SendMessageHandler)
		r.Get("/{userid}", apiHandler.ListUserMessagesHandler)
	})

	// Administrative routes; no authentication is performed.
	r.Route("/super", func(r chi.Router) {
		r.Get("/messages", apiHandler.ListAllMessagesHandler)
	})

	r.Get("/api-docs", serveDocsUI)
	r.Get("/api-docs/openapi.json", serveOpenAPISpec)

	return r
}
