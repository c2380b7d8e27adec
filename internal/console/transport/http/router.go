package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// RouterConfig bundles everything the HTTP surface needs.
type RouterConfig struct {
	Sender    SendPipeline
	Processor WebhookProcessor
	Directory Directory
	Sessions  *SessionManager
	PIN       string
	PINHash   string
	Logger    *slog.Logger
}

// NewRouter assembles the console's chi router.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(cfg.Sessions.Middleware)

	validate := validator.New()
	authHandler := NewAuthHandler(cfg.Sessions, cfg.Directory, cfg.PIN, cfg.PINHash, cfg.Logger)
	messageHandler := NewMessageHandler(cfg.Sender, cfg.Directory, cfg.Logger)
	webhookHandler := NewWebhookHandler(cfg.Processor, cfg.Logger)
	contactHandler := NewContactHandler(cfg.Directory, validate, cfg.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "SMS console is healthy"})
	})

	r.Post("/login", authHandler.HandleLogin)
	r.Post("/logout", authHandler.HandleLogout)

	// Provider-originated callback; authenticated by origin, not by session.
	r.Post("/webhook", webhookHandler.HandleWebhook)

	r.Get("/api/messages/{phone}", messageHandler.HandleMessages)
	r.Get("/api/logs", contactHandler.HandleListLogs)

	r.Group(func(protected chi.Router) {
		protected.Use(RequireAuth)
		protected.Post("/send", messageHandler.HandleSend)
		protected.Post("/api/contact", contactHandler.HandleSaveContact)
		protected.Delete("/api/contact/{phone}", contactHandler.HandleDeleteContact)
		protected.Get("/api/contacts", contactHandler.HandleListContacts)
		protected.Get("/api/lines", contactHandler.HandleListLines)
	})

	return r
}
