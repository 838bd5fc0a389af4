package handlers

import (
	"net/http"
	"time"

	"github.com/asifrahman/travelscout/internal/httpserver/deps"
	"github.com/asifrahman/travelscout/internal/sources"
)

type healthResponse struct {
	Status        string              `json:"status"`
	UptimeSeconds float64             `json:"uptime_seconds"`
	Version       string              `json:"version,omitempty"`
	Commit        string              `json:"commit,omitempty"`
	BuildDate     string              `json:"build_date,omitempty"`
	GoVersion     string              `json:"go_version,omitempty"`
	CacheEntries  int                 `json:"cache_entries"`
	Sources       map[string][]string `json:"sources"`
	Assistant     bool                `json:"assistant"`
}

func Health(d deps.Deps) http.HandlerFunc {
	start := d.StartTime
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		respondJSON(w, http.StatusOK, healthResponse{
			Status:        "ok",
			UptimeSeconds: time.Since(start).Seconds(),
			Version:       d.Version,
			Commit:        d.Commit,
			BuildDate:     d.BuildDate,
			GoVersion:     d.GoVersion,
			CacheEntries:  d.Cache.Size(),
			Sources: map[string][]string{
				string(sources.CategoryHotels):         d.Sources.Names(sources.CategoryHotels),
				string(sources.CategoryTransportation): d.Sources.Names(sources.CategoryTransportation),
			},
			Assistant: d.Assistant.Enabled(),
		})
	}
}
