package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/asifrahman/travelscout/internal/assistant"
	"github.com/asifrahman/travelscout/internal/httpserver/deps"
	"github.com/asifrahman/travelscout/internal/logger"
)

func Recommendations(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var preferences map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&preferences); err != nil {
			respondError(w, d, http.StatusBadRequest, "invalid JSON body", err)
			return
		}

		recs, err := d.Assistant.Recommend(r.Context(), preferences)
		if err != nil {
			if errors.Is(err, assistant.ErrDisabled) {
				respondError(w, d, http.StatusServiceUnavailable, "assistant is not configured", nil)
				return
			}
			d.Logger.Warn("recommendations failed", logger.Error(err))
			respondError(w, d, http.StatusBadGateway, "failed to generate recommendations", err)
			return
		}
		respondJSON(w, http.StatusOK, recs)
	}
}
