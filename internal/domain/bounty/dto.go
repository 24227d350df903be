package bounty

import (
	"time"

	"github.com/aleenavigoda/yardso-sub000/internal/pkg/validator"
)

type CreateBountyRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	HoursOffered float64 `json:"hours_offered"`
	ServiceType  *string `json:"service_type,omitempty"`
}

func (r *CreateBountyRequest) Validate() error {
	var errs validator.ValidationErrors

	// Title
	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if len(r.Title) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not exceed 255 characters",
		})
	}

	// Description
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}
	if len(r.Description) > 2000 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 2000 characters",
		})
	}

	// Hours offered
	if !validator.IsValidHours(r.HoursOffered) {
		errs = append(errs, validator.ValidationError{
			Field:   "hours_offered",
			Message: "hours_offered must be greater than 0 and at most 24",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BountyResponse struct {
	ID              string    `json:"id"`
	PosterProfileID string    `json:"poster_profile_id"`
	PosterName      *string   `json:"poster_name,omitempty"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	HoursOffered    float64   `json:"hours_offered"`
	ServiceType     *string   `json:"service_type,omitempty"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewBountyResponse(b Bounty) BountyResponse {
	return BountyResponse{
		ID:              b.ID,
		PosterProfileID: b.PosterProfileID,
		PosterName:      b.PosterName,
		Title:           b.Title,
		Description:     b.Description,
		HoursOffered:    b.HoursOffered,
		ServiceType:     b.ServiceType,
		Status:          b.Status,
		CreatedAt:       b.CreatedAt,
	}
}
