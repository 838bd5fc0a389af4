package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/asifrahman/travelscout/internal/httpserver/deps"
	"github.com/asifrahman/travelscout/internal/httpserver/handlers"
)

func init() { Register(registerAssistant) }

func registerAssistant(r chi.Router, d deps.Deps) {
	r.Post("/api/chat", handlers.Chat(d))
	r.Post("/api/itinerary", handlers.Itinerary(d))
	r.Post("/api/recommendations", handlers.Recommendations(d))
}
