package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/profile"
	"github.com/aleenavigoda/yardso-sub000/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ProfileHandler interface {
	GetMe(w http.ResponseWriter, r *http.Request)
	UpdateMe(w http.ResponseWriter, r *http.Request)
	UploadAvatar(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Search(w http.ResponseWriter, r *http.Request)
}

type ProfileHandlerImpl struct {
	profileService profile.ProfileService
}

// GetMe implements ProfileHandler.
func (h *ProfileHandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.profileService.GetMe(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateMe implements ProfileHandler.
func (h *ProfileHandlerImpl) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var updateReq profile.UpdateProfileRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update profile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := updateReq.Validate(); err != nil {
		slog.Error("Update profile validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Call service
	result, err := h.profileService.Update(r.Context(), userID, updateReq)
	if err != nil {
		slog.Error("Update profile service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Success response
	slog.Info("Profile updated successfully")
	response.SuccessWithMessage(w, "Profile updated successfully", result)
}

// UploadAvatar implements ProfileHandler.
func (h *ProfileHandlerImpl) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	// Parse multipart form (max 5MB)
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	// Get file from form
	file, fileHeader, err := r.FormFile("avatar")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Avatar file is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	result, err := h.profileService.UploadAvatar(r.Context(), userID, file, fileHeader)
	if err != nil {
		slog.Error("Upload avatar service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Avatar uploaded successfully")
	response.SuccessWithMessage(w, "Avatar uploaded successfully", result)
}

// GetByID implements ProfileHandler.
func (h *ProfileHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "id")
	if profileID == "" {
		response.BadRequest(w, "Profile ID is required", nil)
		return
	}

	result, err := h.profileService.GetByID(r.Context(), profileID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Search implements ProfileHandler.
func (h *ProfileHandlerImpl) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		response.BadRequest(w, "Search query is required", nil)
		return
	}
	limit := getIntQueryParam(r, "limit", 20)

	result, err := h.profileService.Search(r.Context(), query, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func NewProfileHandler(profileService profile.ProfileService) ProfileHandler {
	return &ProfileHandlerImpl{
		profileService: profileService,
	}
}
