package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/realmkeeper/internal/domain"
	"github.com/osse101/realmkeeper/internal/world"
)

// WorldService is the part of the world exposed over HTTP
type WorldService interface {
	Status(ctx context.Context) (world.Status, error)
	Guilds(ctx context.Context) ([]world.GuildSummary, error)
	Player(ctx context.Context, name string) (world.PlayerSummary, error)
	GrantExperience(ctx context.Context, name string, amount float64) (int, error)
	ReportKill(ctx context.Context, name string, mob domain.MobInfo, baseExp float64) (int, error)
	ReportPVPKill(ctx context.Context, killer, victim string) error
}

// HandleStatus returns online, lobby and guild counts
func HandleStatus(svc WorldService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := svc.Status(r.Context())
		if err != nil {
			respondServiceError(w, r, "Status", err)
			return
		}
		respondJSON(w, http.StatusOK, status)
	}
}

// HandleGuilds lists guilds with their online members
func HandleGuilds(svc WorldService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guilds, err := svc.Guilds(r.Context())
		if err != nil {
			respondServiceError(w, r, "List guilds", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: guilds})
	}
}

// HandlePlayer describes one online player
func HandlePlayer(svc WorldService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if name == "" {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
			return
		}

		summary, err := svc.Player(r.Context(), name)
		if err != nil {
			respondServiceError(w, r, "Get player", err)
			return
		}
		respondJSON(w, http.StatusOK, summary)
	}
}
