package profile

import (
	"context"
	"mime/multipart"
)

// ProfileService defines the interface for profile business logic
type ProfileService interface {
	// GetMe returns the acting user's profile
	GetMe(ctx context.Context, userID string) (ProfileResponse, error)

	// GetByID returns a member's public card for directory views
	GetByID(ctx context.Context, profileID string) (PublicProfileResponse, error)

	// Update applies profile edits for the acting user
	Update(ctx context.Context, userID string, req UpdateProfileRequest) (ProfileResponse, error)

	// UploadAvatar stores an avatar image and records its URL
	UploadAvatar(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (ProfileResponse, error)

	// Search matches members by name or email fragment
	Search(ctx context.Context, query string, limit int) ([]PublicProfileResponse, error)

	// ResolveContact looks up an email against existing profiles. Absence
	// is a normal outcome; lookup failures are logged and reported as not
	// found so the caller falls through to the invitation path.
	ResolveContact(ctx context.Context, email string) ResolvedContact
}
