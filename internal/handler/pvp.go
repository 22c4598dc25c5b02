package handler

import (
	"net/http"

	"github.com/osse101/realmkeeper/internal/repository"
)

// HandlePVPLeaderboard returns the top killers, ?limit= defaults to 10
func HandlePVPLeaderboard(stats repository.PVPStats) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := GetLimitQueryParam(r, w, DefaultLeaderboardSize, MaxLeaderboardSize)
		if !ok {
			return
		}

		top, err := stats.Top(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, "PVP leaderboard", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: top})
	}
}
