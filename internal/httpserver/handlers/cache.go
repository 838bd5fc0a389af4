package handlers

import (
	"net/http"

	"github.com/asifrahman/travelscout/internal/httpserver/deps"
	"github.com/asifrahman/travelscout/internal/logger"
)

type cacheClearResponse struct {
	Removed int `json:"removed"`
}

func CacheClear(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		removed := d.Cache.Clear()
		d.Logger.Info("cache cleared", logger.Int("removed", removed))
		respondJSON(w, http.StatusOK, cacheClearResponse{Removed: removed})
	}
}
