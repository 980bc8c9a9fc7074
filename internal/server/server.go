// Package server wires the HTTP surface: both platform webhooks, the
// direct query API and a health check.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"gitlab.com/yelinaung/expense-relay/internal/telegram"
	"gitlab.com/yelinaung/expense-relay/internal/whatsapp"
)

// Pinger reports backing-store health. Implemented by pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the handlers the router serves.
type Deps struct {
	WhatsApp *whatsapp.WebhookHandler
	Telegram *telegram.WebhookHandler
	Query    *QueryHandler
	DB       Pinger
}

// NewRouter builds the chi router for the relay.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := deps.DB.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/webhook/whatsapp", deps.WhatsApp.Verify)
	r.Post("/webhook/whatsapp", deps.WhatsApp.Receive)
	r.Post("/webhook/telegram", deps.Telegram.Receive)
	r.Post("/api/query", deps.Query.Handle)

	return otelhttp.NewHandler(r, "expense-relay")
}
