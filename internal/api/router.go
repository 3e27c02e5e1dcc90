package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Bhola-kumar/content-snatcher/internal/api/handler"
	mw "github.com/Bhola-kumar/content-snatcher/internal/api/middleware"
)

// NewRouter creates the HTTP router with all routes configured.
func NewRouter(
	healthHandler *handler.HealthHandler,
	processHandler *handler.ProcessHandler,
	uploadHandler *handler.UploadHandler,
	webhookHandler *handler.WebhookHandler,
	webhookSecret string,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware. No timeout middleware: the upload route legitimately
	// blocks for the full fetch and chunked transfer.
	r.Use(middleware.CleanPath)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logger)
	r.Use(middleware.Recoverer)

	// Public surface
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/", healthHandler.Root)
	r.Post("/process", processHandler.Process)
	r.Post("/url-upload", uploadHandler.Upload)

	// Webhook, authenticated with the shared secret before anything is parsed
	r.Route("/telegram", func(r chi.Router) {
		r.Use(mw.SecretToken(webhookSecret))
		r.Post("/webhook", webhookHandler.Handle)
	})

	return r
}
