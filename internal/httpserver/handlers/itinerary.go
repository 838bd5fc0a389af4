package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/asifrahman/travelscout/internal/assistant"
	"github.com/asifrahman/travelscout/internal/httpserver/deps"
	"github.com/asifrahman/travelscout/internal/logger"
)

func Itinerary(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assistant.ItineraryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, d, http.StatusBadRequest, "invalid JSON body", err)
			return
		}
		if req.Destination == "" {
			respondError(w, d, http.StatusBadRequest, "destination is required", nil)
			return
		}
		if req.Days <= 0 {
			respondError(w, d, http.StatusBadRequest, "days must be positive", nil)
			return
		}

		it, err := d.Assistant.PlanItinerary(r.Context(), req)
		if err != nil {
			if errors.Is(err, assistant.ErrDisabled) {
				respondError(w, d, http.StatusServiceUnavailable, "assistant is not configured", nil)
				return
			}
			d.Logger.Warn("itinerary generation failed", logger.Error(err))
			respondError(w, d, http.StatusBadGateway, "failed to generate itinerary", err)
			return
		}
		respondJSON(w, http.StatusOK, it)
	}
}
