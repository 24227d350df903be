package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/profile"
	"github.com/aleenavigoda/yardso-sub000/internal/service/file"
)

const maxAvatarSize = 5 << 20

type ProfileServiceImpl struct {
	profile.ProfileRepository
	fileService file.FileService
}

func NewProfileService(profileRepository profile.ProfileRepository, fileService file.FileService) profile.ProfileService {
	return &ProfileServiceImpl{
		ProfileRepository: profileRepository,
		fileService:       fileService,
	}
}

// GetMe implements profile.ProfileService.
func (p *ProfileServiceImpl) GetMe(ctx context.Context, userID string) (profile.ProfileResponse, error) {
	profileData, err := p.ProfileRepository.GetByUserID(ctx, userID)
	if err != nil {
		return profile.ProfileResponse{}, err
	}

	return profile.NewProfileResponse(profileData), nil
}

// GetByID implements profile.ProfileService.
func (p *ProfileServiceImpl) GetByID(ctx context.Context, profileID string) (profile.PublicProfileResponse, error) {
	profileData, err := p.ProfileRepository.GetByID(ctx, profileID)
	if err != nil {
		return profile.PublicProfileResponse{}, err
	}

	return profile.NewPublicProfileResponse(profileData), nil
}

// Update implements profile.ProfileService.
func (p *ProfileServiceImpl) Update(ctx context.Context, userID string, req profile.UpdateProfileRequest) (profile.ProfileResponse, error) {
	profileData, err := p.ProfileRepository.GetByUserID(ctx, userID)
	if err != nil {
		return profile.ProfileResponse{}, err
	}

	if req.FullName != nil {
		profileData.FullName = *req.FullName
	}
	if req.DisplayName != nil {
		profileData.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		profileData.Bio = req.Bio
	}
	if req.Location != nil {
		profileData.Location = req.Location
	}

	updated, err := p.ProfileRepository.Update(ctx, profileData)
	if err != nil {
		return profile.ProfileResponse{}, fmt.Errorf("failed to update profile: %w", err)
	}

	return profile.NewProfileResponse(updated), nil
}

// UploadAvatar implements profile.ProfileService.
func (p *ProfileServiceImpl) UploadAvatar(ctx context.Context, userID string, f multipart.File, header *multipart.FileHeader) (profile.ProfileResponse, error) {
	profileData, err := p.ProfileRepository.GetByUserID(ctx, userID)
	if err != nil {
		return profile.ProfileResponse{}, err
	}

	if header.Size > maxAvatarSize {
		return profile.ProfileResponse{}, fmt.Errorf("avatar must not exceed 5MB")
	}

	uploadedPath, err := p.fileService.UploadAvatar(ctx, profileData.ID, f, header.Filename)
	if err != nil {
		return profile.ProfileResponse{}, fmt.Errorf("failed to upload avatar: %w", err)
	}

	avatarURL, err := p.fileService.GetFileURL(ctx, uploadedPath, 0)
	if err != nil {
		return profile.ProfileResponse{}, fmt.Errorf("failed to resolve avatar url: %w", err)
	}

	profileData.AvatarURL = &avatarURL
	updated, err := p.ProfileRepository.Update(ctx, profileData)
	if err != nil {
		return profile.ProfileResponse{}, fmt.Errorf("failed to update avatar url: %w", err)
	}

	return profile.NewProfileResponse(updated), nil
}

// Search implements profile.ProfileService.
func (p *ProfileServiceImpl) Search(ctx context.Context, query string, limit int) ([]profile.PublicProfileResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []profile.PublicProfileResponse{}, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	profiles, err := p.ProfileRepository.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search profiles: %w", err)
	}

	responses := make([]profile.PublicProfileResponse, len(profiles))
	for i, pr := range profiles {
		responses[i] = profile.NewPublicProfileResponse(pr)
	}

	return responses, nil
}

// ResolveContact implements profile.ProfileService.
// A lookup failure is reported as not-found so the caller falls back to the
// invitation path.
func (p *ProfileServiceImpl) ResolveContact(ctx context.Context, email string) profile.ResolvedContact {
	email = strings.ToLower(strings.TrimSpace(email))

	profileData, err := p.ProfileRepository.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, profile.ErrProfileNotFound) {
			slog.Warn("contact lookup failed, treating as unregistered", "email", email, "error", err)
		}
		return profile.ResolvedContact{Found: false, Email: email}
	}

	return profile.ResolvedContact{
		Found:       true,
		ProfileID:   &profileData.ID,
		DisplayName: &profileData.DisplayName,
		Email:       email,
	}
}
