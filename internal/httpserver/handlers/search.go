package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/asifrahman/travelscout/internal/domain"
	"github.com/asifrahman/travelscout/internal/httpserver/deps"
	"github.com/asifrahman/travelscout/internal/logger"
)

// sessionHeader carries the client session for single-flight cancellation:
// a new search from the same session preempts the one still running.
const sessionHeader = "X-Session-ID"

func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q domain.TripQuery
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			respondError(w, d, http.StatusBadRequest, "invalid JSON body", err)
			return
		}

		d.Logger.Info("search request",
			logger.String("from", q.From),
			logger.String("to", q.To),
			logger.String("checkIn", q.CheckIn))

		result, err := d.Orchestrator.Search(r.Context(), r.Header.Get(sessionHeader), q)
		if err != nil {
			var verr *domain.ValidationError
			switch {
			case errors.As(err, &verr):
				respondError(w, d, http.StatusBadRequest, fmt.Sprintf("%s %s", verr.Field, verr.Reason), nil)
			case errors.Is(err, context.Canceled):
				// Superseded by a newer search from the same session, or
				// the client went away.
				respondError(w, d, http.StatusConflict, "search superseded", err)
			default:
				respondError(w, d, http.StatusInternalServerError, "failed to fetch travel data", err)
			}
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}
