package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/bounty"
	"github.com/aleenavigoda/yardso-sub000/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type BountyHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListOpen(w http.ResponseWriter, r *http.Request)
	Close(w http.ResponseWriter, r *http.Request)
}

type BountyHandlerImpl struct {
	bountyService bounty.BountyService
}

// Create implements BountyHandler.
func (h *BountyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	profileID := getProfileIDFromContext(r)
	if profileID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var createReq bounty.CreateBountyRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create bounty decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := createReq.Validate(); err != nil {
		slog.Error("Create bounty validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Call service
	result, err := h.bountyService.Create(r.Context(), profileID, createReq)
	if err != nil {
		slog.Error("Create bounty service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Success response
	response.Created(w, "Bounty posted successfully", result)
}

// Get implements BountyHandler.
func (h *BountyHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	bountyID := chi.URLParam(r, "id")
	if bountyID == "" {
		response.BadRequest(w, "Bounty ID is required", nil)
		return
	}

	result, err := h.bountyService.GetByID(r.Context(), bountyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListOpen implements BountyHandler.
func (h *BountyHandlerImpl) ListOpen(w http.ResponseWriter, r *http.Request) {
	var serviceType *string
	if raw := r.URL.Query().Get("service_type"); raw != "" {
		serviceType = &raw
	}
	limit := getIntQueryParam(r, "limit", 50)

	result, err := h.bountyService.ListOpen(r.Context(), serviceType, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Close implements BountyHandler.
func (h *BountyHandlerImpl) Close(w http.ResponseWriter, r *http.Request) {
	profileID := getProfileIDFromContext(r)
	if profileID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	bountyID := chi.URLParam(r, "id")
	if bountyID == "" {
		response.BadRequest(w, "Bounty ID is required", nil)
		return
	}

	result, err := h.bountyService.Close(r.Context(), profileID, bountyID)
	if err != nil {
		slog.Error("Close bounty service error", "error", err, "bounty_id", bountyID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bounty closed", result)
}

func NewBountyHandler(bountyService bounty.BountyService) BountyHandler {
	return &BountyHandlerImpl{
		bountyService: bountyService,
	}
}
