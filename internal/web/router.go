package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/makt28/rowalert/internal/config"
)

// NewRouter sets up all routes and returns the http.Handler.
func NewRouter(cfg config.Config, dispatcher Dispatcher) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(AccessLog)
	r.Use(middleware.Recoverer)

	keys := NewKeyVerifier(cfg.Auth)
	webhook := NewWebhookHandler(dispatcher, cfg.Alerts.DefaultRecipient)
	health := NewHealthHandler(keys.Enabled(), cfg.Alerts.DefaultRecipient != "")

	// Public routes
	r.Get("/healthz", health.ServeHTTP)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(APIKeyMiddleware(keys))

		r.Post("/webhook/rows", webhook.ReceiveRow)
	})

	return r
}
