package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/asifrahman/travelscout/internal/assistant"
	"github.com/asifrahman/travelscout/internal/httpserver/deps"
	"github.com/asifrahman/travelscout/internal/logger"
)

type chatRequest struct {
	Message string              `json:"message"`
	History []assistant.Message `json:"history,omitempty"`
}

type chatResponse struct {
	Message string `json:"message"`
}

func Chat(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, d, http.StatusBadRequest, "invalid JSON body", err)
			return
		}
		if req.Message == "" {
			respondError(w, d, http.StatusBadRequest, "message is required", nil)
			return
		}

		reply, err := d.Assistant.Chat(r.Context(), req.Message, req.History)
		if err != nil {
			if errors.Is(err, assistant.ErrDisabled) {
				respondError(w, d, http.StatusServiceUnavailable, "assistant is not configured", nil)
				return
			}
			d.Logger.Warn("chat failed", logger.Error(err))
			respondError(w, d, http.StatusBadGateway, "Sorry, I'm having trouble connecting right now. Please try again in a moment.", err)
			return
		}
		respondJSON(w, http.StatusOK, chatResponse{Message: reply})
	}
}
