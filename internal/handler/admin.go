package handler

import (
	"net/http"

	"github.com/osse101/realmkeeper/internal/domain"
	"github.com/osse101/realmkeeper/internal/logger"
)

// GrantExperienceRequest awards experience to an online player
type GrantExperienceRequest struct {
	Player string  `json:"player" validate:"required,max=32,playername"`
	Amount float64 `json:"amount" validate:"gt=0,max=1000000"`
}

// ReportKillRequest reports a mob kill from the combat service
type ReportKillRequest struct {
	Player   string  `json:"player" validate:"required,max=32,playername"`
	MobID    int64   `json:"mob_id" validate:"min=0"`
	MobKind  int     `json:"mob_kind" validate:"min=0"`
	MobLevel int     `json:"mob_level" validate:"min=1"`
	Exp      float64 `json:"exp" validate:"min=0,max=1000000"`
}

// ReportPVPKillRequest reports one player killing another
type ReportPVPKillRequest struct {
	Killer string `json:"killer" validate:"required,max=32,playername"`
	Victim string `json:"victim" validate:"required,max=32,playername,nefield=Killer"`
}

// AwardResponse carries the experience actually credited
type AwardResponse struct {
	Awarded int `json:"awarded"`
}

// HandleGrantExperience awards experience through the level curve
func HandleGrantExperience(svc WorldService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GrantExperienceRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Grant experience"); err != nil {
			return
		}

		awarded, err := svc.GrantExperience(r.Context(), req.Player, req.Amount)
		if err != nil {
			respondServiceError(w, r, "Grant experience", err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgExperienceGrant, "player", req.Player, "awarded", awarded)
		respondJSON(w, http.StatusOK, AwardResponse{Awarded: awarded})
	}
}

// HandleReportKill credits a mob kill and its achievement progress
func HandleReportKill(svc WorldService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ReportKillRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Report kill"); err != nil {
			return
		}

		mob := domain.MobInfo{ID: req.MobID, Kind: req.MobKind, Level: req.MobLevel}
		awarded, err := svc.ReportKill(r.Context(), req.Player, mob, req.Exp)
		if err != nil {
			respondServiceError(w, r, "Report kill", err)
			return
		}

		logger.FromContext(r.Context()).Debug(LogMsgKillReported, "player", req.Player, "mob_kind", req.MobKind, "awarded", awarded)
		respondJSON(w, http.StatusOK, AwardResponse{Awarded: awarded})
	}
}

// HandleReportPVPKill records a kill and a death
func HandleReportPVPKill(svc WorldService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ReportPVPKillRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Report PVP kill"); err != nil {
			return
		}

		if err := svc.ReportPVPKill(r.Context(), req.Killer, req.Victim); err != nil {
			respondServiceError(w, r, "Report PVP kill", err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgPVPKillReported, "killer", req.Killer, "victim", req.Victim)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "recorded"})
	}
}
