package http

import (
	"log/slog"
	"net/http"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/invitation"
	"github.com/aleenavigoda/yardso-sub000/internal/handler/http/response"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type InvitationHandler interface {
	GetByToken(w http.ResponseWriter, r *http.Request)
	Accept(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type InvitationHandlerImpl struct {
	invitationService invitation.InvitationService
}

// GetByToken implements InvitationHandler. The endpoint is public, it
// backs the landing page behind the emailed link.
func (h *InvitationHandlerImpl) GetByToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if !validator.IsValidInviteToken(token) {
		// Malformed tokens get the same answer as unknown ones
		response.HandleError(w, invitation.ErrInvitationNotFound)
		return
	}

	result, err := h.invitationService.GetByToken(r.Context(), token)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Accept implements InvitationHandler.
func (h *InvitationHandlerImpl) Accept(w http.ResponseWriter, r *http.Request) {
	profileID := getProfileIDFromContext(r)
	if profileID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	token := chi.URLParam(r, "token")
	if !validator.IsValidInviteToken(token) {
		response.HandleError(w, invitation.ErrInvitationNotFound)
		return
	}

	result, err := h.invitationService.Accept(r.Context(), token, profileID)
	if err != nil {
		slog.Error("Accept invitation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}

// List implements InvitationHandler.
func (h *InvitationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	profileID := getProfileIDFromContext(r)
	if profileID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.invitationService.ListByInviter(r.Context(), profileID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Cancel implements InvitationHandler.
func (h *InvitationHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	profileID := getProfileIDFromContext(r)
	if profileID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	invitationID := chi.URLParam(r, "id")
	if invitationID == "" {
		response.BadRequest(w, "Invitation ID is required", nil)
		return
	}

	if err := h.invitationService.Cancel(r.Context(), profileID, invitationID); err != nil {
		slog.Error("Cancel invitation service error", "error", err, "invitation_id", invitationID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invitation cancelled", nil)
}

func NewInvitationHandler(invitationService invitation.InvitationService) InvitationHandler {
	return &InvitationHandlerImpl{
		invitationService: invitationService,
	}
}
