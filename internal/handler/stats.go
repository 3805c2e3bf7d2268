package handler

import (
	"net/http"

	"github.com/osse101/GridClash_Go/internal/logger"
	"github.com/osse101/GridClash_Go/internal/stats"
)

// HandleGetEncounterStats returns the recorded stats for one encounter
func HandleGetEncounterStats(statsService stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := URLParamUUID(r, w, "encounterID")
		if !ok {
			return
		}

		summary, err := statsService.GetSummary(r.Context(), id.String())
		if err != nil {
			logger.FromContext(r.Context()).Warn(ErrMsgGetStatsFailed, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: summary})
	}
}
