package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"socialmedia/internal/handler"
	"socialmedia/internal/httputil"
	mw "socialmedia/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AccountHandler *handler.AccountHandler
	PostHandler    *handler.PostHandler
	StatsHandler   *handler.StatsHandler
	AdminHandler   *handler.AdminHandler
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(mw.MaxBodySize(mw.DefaultMaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/accounts", func(r chi.Router) {
		r.Post("/", cfg.AccountHandler.Create)
		r.Delete("/id/{id}", cfg.AccountHandler.DeleteByID)
		r.Get("/{handle}", cfg.AccountHandler.Show)
		r.Patch("/{handle}", cfg.AccountHandler.Update)
		r.Delete("/{handle}", cfg.AccountHandler.Delete)
	})

	r.Route("/posts", func(r chi.Router) {
		r.Post("/", cfg.PostHandler.Create)
		r.Get("/{id}", cfg.PostHandler.Show)
		r.Delete("/{id}", cfg.PostHandler.Delete)
		r.Get("/{id}/tree", cfg.PostHandler.Tree)
		r.Post("/{id}/comments", cfg.PostHandler.Comment)
		r.Post("/{id}/endorsements", cfg.PostHandler.Endorse)
	})

	r.Route("/stats", func(r chi.Router) {
		r.Get("/", cfg.StatsHandler.Get)
		r.Get("/leaderboard", cfg.StatsHandler.Leaderboard)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/save", cfg.AdminHandler.Save)
		r.Post("/load", cfg.AdminHandler.Load)
		r.Post("/erase", cfg.AdminHandler.Erase)
		r.Post("/reset", cfg.AdminHandler.Reset)
	})

	return r
}
