package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/asifrahman/travelscout/internal/httpserver/deps"
)

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// respondError hides internal error details unless dev mode is on.
func respondError(w http.ResponseWriter, d deps.Deps, status int, msg string, err error) {
	resp := errorResponse{Error: msg}
	if d.DevMode && err != nil {
		resp.Details = err.Error()
	}
	respondJSON(w, status, resp)
}
