package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/structa-ai/structa/internal/api"
	"github.com/structa-ai/structa/internal/api/handlers"
	"github.com/structa-ai/structa/internal/api/middleware"
)

type RouterConfig struct {
	KnowledgeHandler *handlers.KnowledgeHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/knowledge", func(r chi.Router) {
		r.Get("/pending", cfg.KnowledgeHandler.ListPending)
		r.Get("/{id}", cfg.KnowledgeHandler.Get)
		r.Post("/{id}/process", cfg.KnowledgeHandler.Process)
	})

	return r
}
