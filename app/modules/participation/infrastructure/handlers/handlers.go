package participationhandlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	participationservice "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/application"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/httpx"
)

// ParticipationHandlers serves the ledger, statistics and ranking API.
type ParticipationHandlers struct {
	service participationservice.Service
	logger  *slog.Logger
}

func NewParticipationHandlers(service participationservice.Service, logger *slog.Logger) *ParticipationHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParticipationHandlers{service: service, logger: logger}
}

// RegisterRoutes mounts the participation routes. Ledger writes go through
// the write middleware.
func RegisterRoutes(r chi.Router, h *ParticipationHandlers, write func(http.Handler) http.Handler) {
	r.Get("/ranking", h.GetRanking)

	r.Route("/users/{userId}", func(r chi.Router) {
		r.Get("/competitions", h.GetUserCompetitions)
		r.Get("/editions", h.GetUserEditions)
		r.Get("/stats", h.GetUserStats)
		r.Get("/editions/stats", h.GetUserEditionStats)

		r.Group(func(r chi.Router) {
			if write != nil {
				r.Use(write)
			}
			r.Post("/competitions/{competitionId}/mark", h.MarkCompetition)
			r.Delete("/competitions/{competitionId}/mark", h.UnmarkCompetition)
			r.Post("/competitions/{competitionId}/result", h.AddCompetitionResult)
			r.Post("/editions/{editionId}/mark", h.MarkEdition)
			r.Delete("/editions/{editionId}/mark", h.UnmarkEdition)
			r.Post("/editions/{editionId}/result", h.AddEditionResult)
		})
	})
}

type markRequest struct {
	Status string `json:"status"`
}

// MarkCompetition handles POST /users/{userId}/competitions/{competitionId}/mark.
func (h *ParticipationHandlers) MarkCompetition(w http.ResponseWriter, r *http.Request) {
	userID, competitionID, err := pathIDs(r, "competitionId")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	var req markRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	entry, err := h.service.MarkCompetition(r.Context(), userID, competitionID, req.Status)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, entry)
}

// UnmarkCompetition handles DELETE /users/{userId}/competitions/{competitionId}/mark.
func (h *ParticipationHandlers) UnmarkCompetition(w http.ResponseWriter, r *http.Request) {
	userID, competitionID, err := pathIDs(r, "competitionId")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	if err := h.service.UnmarkCompetition(r.Context(), userID, competitionID); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddCompetitionResult handles POST /users/{userId}/competitions/{competitionId}/result.
func (h *ParticipationHandlers) AddCompetitionResult(w http.ResponseWriter, r *http.Request) {
	userID, competitionID, err := pathIDs(r, "competitionId")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	var input participationservice.ResultInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	entry, err := h.service.AddCompetitionResult(r.Context(), userID, competitionID, input)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, entry)
}

// MarkEdition handles POST /users/{userId}/editions/{editionId}/mark.
func (h *ParticipationHandlers) MarkEdition(w http.ResponseWriter, r *http.Request) {
	userID, editionID, err := pathIDs(r, "editionId")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	var req markRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	entry, err := h.service.MarkEdition(r.Context(), userID, editionID, req.Status)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, entry)
}

// UnmarkEdition handles DELETE /users/{userId}/editions/{editionId}/mark.
func (h *ParticipationHandlers) UnmarkEdition(w http.ResponseWriter, r *http.Request) {
	userID, editionID, err := pathIDs(r, "editionId")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	if err := h.service.UnmarkEdition(r.Context(), userID, editionID); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddEditionResult handles POST /users/{userId}/editions/{editionId}/result.
func (h *ParticipationHandlers) AddEditionResult(w http.ResponseWriter, r *http.Request) {
	userID, editionID, err := pathIDs(r, "editionId")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	var input participationservice.ResultInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	entry, err := h.service.AddEditionResult(r.Context(), userID, editionID, input)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, entry)
}

// GetUserCompetitions handles GET /users/{userId}/competitions.
func (h *ParticipationHandlers) GetUserCompetitions(w http.ResponseWriter, r *http.Request) {
	userID, err := httpx.UUIDParam(r, "userId")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	entries, err := h.service.GetUserCompetitions(r.Context(), userID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, entries)
}

// GetUserEditions handles GET /users/{userId}/editions.
func (h *ParticipationHandlers) GetUserEditions(w http.ResponseWriter, r *http.Request) {
	userID, err := httpx.UUIDParam(r, "userId")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	entries, err := h.service.GetUserEditions(r.Context(), userID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, entries)
}

// GetUserStats handles GET /users/{userId}/stats.
func (h *ParticipationHandlers) GetUserStats(w http.ResponseWriter, r *http.Request) {
	userID, err := httpx.UUIDParam(r, "userId")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	stats, err := h.service.GetUserStats(r.Context(), userID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, stats)
}

// GetUserEditionStats handles GET /users/{userId}/editions/stats.
func (h *ParticipationHandlers) GetUserEditionStats(w http.ResponseWriter, r *http.Request) {
	userID, err := httpx.UUIDParam(r, "userId")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	stats, err := h.service.GetUserEditionStats(r.Context(), userID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, stats)
}

// GetRanking handles GET /ranking?type=competitions&limit=20.
func (h *ParticipationHandlers) GetRanking(w http.ResponseWriter, r *http.Request) {
	metric := r.URL.Query().Get("type")
	limit := httpx.IntQuery(r, "limit", 0)
	ranking, err := h.service.GetGlobalRanking(r.Context(), metric, limit)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, ranking)
}

func pathIDs(r *http.Request, target string) (userID, targetID uuid.UUID, err error) {
	userID, err = httpx.UUIDParam(r, "userId")
	if err != nil {
		return userID, targetID, err
	}
	targetID, err = httpx.UUIDParam(r, target)
	return userID, targetID, err
}
