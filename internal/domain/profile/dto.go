package profile

import (
	"time"

	"github.com/aleenavigoda/yardso-sub000/internal/pkg/validator"
)

type UpdateProfileRequest struct {
	FullName    *string `json:"full_name,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Location    *string `json:"location,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	// Full name
	if r.FullName != nil {
		if validator.IsEmpty(*r.FullName) {
			errs = append(errs, validator.ValidationError{
				Field:   "full_name",
				Message: "full_name must not be empty",
			})
		}
		if len(*r.FullName) > 255 {
			errs = append(errs, validator.ValidationError{
				Field:   "full_name",
				Message: "full_name must not exceed 255 characters",
			})
		}
	}

	// Display name
	if r.DisplayName != nil && !validator.IsValidDisplayName(*r.DisplayName) {
		errs = append(errs, validator.ValidationError{
			Field:   "display_name",
			Message: "display_name must be between 1 and 80 characters",
		})
	}

	// Bio
	if r.Bio != nil && len(*r.Bio) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "bio",
			Message: "bio must not exceed 1000 characters",
		})
	}

	// Location
	if r.Location != nil && len(*r.Location) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ProfileResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	DisplayName  string    `json:"display_name"`
	Bio          *string   `json:"bio,omitempty"`
	Location     *string   `json:"location,omitempty"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	BalanceHours float64   `json:"balance_hours"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewProfileResponse(p Profile) ProfileResponse {
	return ProfileResponse{
		ID:           p.ID,
		Email:        p.Email,
		FullName:     p.FullName,
		DisplayName:  p.DisplayName,
		Bio:          p.Bio,
		Location:     p.Location,
		AvatarURL:    p.AvatarURL,
		BalanceHours: p.BalanceHours,
		CreatedAt:    p.CreatedAt,
	}
}

// PublicProfileResponse is the directory card. It never carries the email
// or any account linkage.
type PublicProfileResponse struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	DisplayName  string    `json:"display_name"`
	Bio          *string   `json:"bio,omitempty"`
	Location     *string   `json:"location,omitempty"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	BalanceHours float64   `json:"balance_hours"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewPublicProfileResponse(p Profile) PublicProfileResponse {
	return PublicProfileResponse{
		ID:           p.ID,
		FullName:     p.FullName,
		DisplayName:  p.DisplayName,
		Bio:          p.Bio,
		Location:     p.Location,
		AvatarURL:    p.AvatarURL,
		BalanceHours: p.BalanceHours,
		CreatedAt:    p.CreatedAt,
	}
}

// ResolvedContact is the contact resolver's answer: either the matched
// member or Found=false when the email has no profile
type ResolvedContact struct {
	Found       bool    `json:"found"`
	ProfileID   *string `json:"profile_id,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	Email       string  `json:"email"`
}
