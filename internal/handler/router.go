package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/vaultpass/passgen-go/internal/middleware"
	"github.com/vaultpass/passgen-go/internal/service"
)

// RouterConfig holds the services and settings the HTTP API is built from.
type RouterConfig struct {
	Generator      *service.GeneratorService
	History        *service.HistoryService
	Sessions       *service.SessionService
	SessionSecret  string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter builds the chi router for the API.
func NewRouter(cfg RouterConfig) http.Handler {
	genHandler := NewGeneratorHandler(cfg.Generator)
	historyHandler := NewHistoryHandler(cfg.History)
	sessionHandler := NewSessionHandler(cfg.Sessions)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// one limiter shared by every API route, so a client has a single budget
	var limit func(http.Handler) http.Handler
	if cfg.RateLimitRPS > 0 {
		limit = middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	r.Group(func(r chi.Router) {
		if limit != nil {
			r.Use(limit)
		}
		r.Post("/api/v1/generate", genHandler.HandleGenerate)
		r.Post("/api/v1/strength", genHandler.HandleStrength)
		r.Post("/api/v1/session", sessionHandler.HandleCreate)
	})

	r.Group(func(r chi.Router) {
		if limit != nil {
			r.Use(limit)
		}
		r.Use(middleware.SessionAuth(cfg.SessionSecret))
		r.Get("/api/v1/history", historyHandler.HandleList)
		r.Post("/api/v1/history", historyHandler.HandleRecord)
		r.Delete("/api/v1/history", historyHandler.HandleClear)
	})

	return r
}
