package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/asifrahman/travelscout/internal/httpserver/deps"
	"github.com/asifrahman/travelscout/internal/httpserver/handlers"
)

func init() { Register(registerCache) }

func registerCache(r chi.Router, d deps.Deps) {
	r.Post("/api/cache/clear", handlers.CacheClear(d))
}
