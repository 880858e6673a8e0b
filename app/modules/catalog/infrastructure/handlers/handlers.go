package cataloghandlers

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	catalogservice "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/application"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/apperrors"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/httpx"
)

// maxRawEditionBytes bounds the body of a raw resolve request.
const maxRawEditionBytes = 1 << 20

// ErrInvalidYear is returned for a non-numeric year path segment.
var ErrInvalidYear = apperrors.Validation("invalid year")

// CatalogHandlers serves the catalog HTTP API.
type CatalogHandlers struct {
	service catalogservice.Service
	logger  *slog.Logger
}

// NewCatalogHandlers creates the catalog HTTP handlers.
func NewCatalogHandlers(service catalogservice.Service, logger *slog.Logger) *CatalogHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogHandlers{service: service, logger: logger}
}

// RegisterRoutes mounts the catalog routes. Writes go through the write
// middleware (rate limiting).
func RegisterRoutes(r chi.Router, h *CatalogHandlers, write func(http.Handler) http.Handler) {
	r.Get("/events/{id}", h.GetEvent)
	r.Get("/competitions/{id}", h.GetCompetition)
	r.Get("/competitions/{id}/editions", h.ListEditions)
	r.Get("/competitions/{id}/editions/years", h.AvailableYears)
	r.Get("/competitions/{id}/editions/{year}", h.GetEditionByYear)
	r.Get("/editions/{id}", h.GetEdition)
	r.Get("/editions/{id}/resolved", h.GetResolvedEdition)
	r.Get("/editions/slug/{slug}", h.GetEditionBySlug)
	r.Post("/editions/resolve", h.ResolveRawEdition)

	r.Group(func(r chi.Router) {
		if write != nil {
			r.Use(write)
		}
		r.Post("/competitions/{id}/editions", h.CreateEdition)
		r.Post("/competitions/{id}/editions/bulk", h.CreateBulkEditions)
		r.Patch("/editions/{id}/status", h.UpdateEditionStatus)
	})
}

// GetEvent handles GET /events/{id}.
func (h *CatalogHandlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	event, err := h.service.GetEvent(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, event)
}

// GetCompetition handles GET /competitions/{id}.
func (h *CatalogHandlers) GetCompetition(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	competition, err := h.service.GetCompetition(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, competition)
}

// ListEditions handles GET /competitions/{id}/editions.
func (h *CatalogHandlers) ListEditions(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	editions, err := h.service.ListEditions(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, editions)
}

// AvailableYears handles GET /competitions/{id}/editions/years.
func (h *CatalogHandlers) AvailableYears(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	years, err := h.service.AvailableYears(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, years)
}

// GetEditionByYear handles GET /competitions/{id}/editions/{year}.
func (h *CatalogHandlers) GetEditionByYear(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	rawYear := chi.URLParam(r, "year")
	year, err := strconv.Atoi(rawYear)
	if err != nil {
		httpx.WriteError(w, r, h.logger, apperrors.Wrap(ErrInvalidYear, "invalid year %q", rawYear))
		return
	}
	edition, err := h.service.GetEditionByYear(r.Context(), id, year)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, edition)
}

// GetEdition handles GET /editions/{id}.
func (h *CatalogHandlers) GetEdition(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	edition, err := h.service.GetEdition(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, edition)
}

// GetEditionBySlug handles GET /editions/slug/{slug}.
func (h *CatalogHandlers) GetEditionBySlug(w http.ResponseWriter, r *http.Request) {
	edition, err := h.service.GetEditionBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, edition)
}

// GetResolvedEdition handles GET /editions/{id}/resolved.
func (h *CatalogHandlers) GetResolvedEdition(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	resolved, err := h.service.GetResolvedEdition(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resolved)
}

// ResolveRawEdition handles POST /editions/resolve. The body is an edition
// record in either the nested or the flattened shape.
func (h *CatalogHandlers) ResolveRawEdition(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRawEditionBytes))
	if err != nil {
		httpx.WriteError(w, r, h.logger, apperrors.Wrap(httpx.ErrMalformedBody, "failed to read body: %v", err))
		return
	}
	resolved, err := h.service.ResolveRawEdition(r.Context(), raw)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resolved)
}

type bulkRequest struct {
	Years []int `json:"years"`
}

// CreateBulkEditions handles POST /competitions/{id}/editions/bulk.
func (h *CatalogHandlers) CreateBulkEditions(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	var req bulkRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	editions, err := h.service.CreateBulkEditions(r.Context(), id, req.Years)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, editions)
}

// CreateEdition handles POST /competitions/{id}/editions.
func (h *CatalogHandlers) CreateEdition(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	var input catalogservice.CreateEditionInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	edition, err := h.service.CreateEdition(r.Context(), id, input)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, edition)
}

type statusRequest struct {
	Status             string `json:"status"`
	RegistrationStatus string `json:"registrationStatus"`
}

// UpdateEditionStatus handles PATCH /editions/{id}/status.
func (h *CatalogHandlers) UpdateEditionStatus(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	var req statusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	update, err := h.service.UpdateEditionStatus(r.Context(), id, req.Status, req.RegistrationStatus)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, update)
}
