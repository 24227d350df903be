package invitation

import (
	"time"

	"github.com/aleenavigoda/yardso-sub000/internal/pkg/validator"
)

// CreateRequest - used internally by the ledger writer when the counterpart
// has no profile yet
type CreateRequest struct {
	InviterProfileID string
	InviterName      string // For email template
	InviteeEmail     string
	InviteeName      *string
	Hours            float64
	Description      string
	ServiceType      *string
	Mode             string
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.InviterProfileID) {
		errs = append(errs, validator.ValidationError{
			Field:   "inviter_profile_id",
			Message: "inviter_profile_id is required",
		})
	}

	if validator.IsEmpty(r.InviteeEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "invitee_email",
			Message: "invitee_email is required",
		})
	} else if !validator.IsValidEmail(r.InviteeEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "invitee_email",
			Message: "invitee_email format is invalid",
		})
	}

	if !validator.IsValidHours(r.Hours) {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "hours must be greater than 0 and at most 24",
		})
	}

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CreateResult is returned to the ledger writer after the invitation and its
// pending log are stored
type CreateResult struct {
	InvitationID string
	Token        string
	ExpiresAt    time.Time
	Reused       bool
}

// PendingLogPayload is the deferred exchange shown on the public token
// endpoint so the invitee knows what accepting will record
type PendingLogPayload struct {
	Hours       float64 `json:"hours"`
	Description string  `json:"description"`
	ServiceType *string `json:"service_type,omitempty"`
	Mode        string  `json:"mode"`
}

// InvitationDetailResponse - GET /invitations/{token}
type InvitationDetailResponse struct {
	Token        string             `json:"token"`
	InviteeEmail string             `json:"invitee_email"`
	InviteeName  *string            `json:"invitee_name,omitempty"`
	InviterName  string             `json:"inviter_name"`
	Status       string             `json:"status"`
	ExpiresAt    time.Time          `json:"expires_at"`
	TimeLog      *PendingLogPayload `json:"time_log,omitempty"`
}

// AcceptResponse for invitation acceptance result
type AcceptResponse struct {
	Message          string  `json:"message"`
	InvitationID     string  `json:"invitation_id"`
	TransactionID    *string `json:"transaction_id,omitempty"`
	AlreadyAccepted  bool    `json:"already_accepted"`
	InviterProfileID string  `json:"inviter_profile_id"`
}

// SentInvitationResponse - GET /invitations, the inviter's own list
type SentInvitationResponse struct {
	ID           string     `json:"id"`
	InviteeEmail string     `json:"invitee_email"`
	InviteeName  *string    `json:"invitee_name,omitempty"`
	Status       string     `json:"status"`
	ExpiresAt    time.Time  `json:"expires_at"`
	AcceptedAt   *time.Time `json:"accepted_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func NewSentInvitationResponse(inv Invitation) SentInvitationResponse {
	status := inv.Status
	if status == StatusPending && inv.IsExpired() {
		status = StatusExpired
	}
	return SentInvitationResponse{
		ID:           inv.ID,
		InviteeEmail: inv.InviteeEmail,
		InviteeName:  inv.InviteeName,
		Status:       string(status),
		ExpiresAt:    inv.ExpiresAt,
		AcceptedAt:   inv.AcceptedAt,
		CreatedAt:    inv.CreatedAt,
	}
}
