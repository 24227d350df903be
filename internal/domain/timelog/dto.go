package timelog

import (
	"time"

	"github.com/aleenavigoda/yardso-sub000/internal/pkg/validator"
)

// LogTimeRequest records an exchange against a counterpart identified by
// email. When the email resolves to a member the transaction is created
// directly; otherwise an invitation with a deferred log is created instead.
type LogTimeRequest struct {
	Contact     string  `json:"contact"`
	Name        *string `json:"name,omitempty"`
	Hours       float64 `json:"hours"`
	Mode        Mode    `json:"mode"`
	Description string  `json:"description"`
	ServiceType *string `json:"service_type,omitempty"`
}

func (r *LogTimeRequest) Validate() error {
	var errs validator.ValidationErrors

	// Contact
	if validator.IsEmpty(r.Contact) {
		errs = append(errs, validator.ValidationError{
			Field:   "contact",
			Message: "contact is required",
		})
	}

	// Name
	if r.Name != nil && len(*r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	// Hours
	if !validator.IsValidHours(r.Hours) {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "hours must be greater than 0 and at most 24",
		})
	}

	// Mode
	if !r.Mode.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "mode",
			Message: "mode must be either helped or wasHelped",
		})
	}

	// Description
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}
	if len(r.Description) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

const (
	LogKindDirect  = "direct"
	LogKindInvited = "invited"
)

// LogTimeResult reports which branch the ledger writer took. Exactly one of
// Transaction or Invitation is set, matching Kind.
type LogTimeResult struct {
	Kind        string                 `json:"kind"`
	Transaction *TransactionResponse   `json:"transaction,omitempty"`
	Invitation  *InvitationSentSummary `json:"invitation,omitempty"`
}

// InvitationSentSummary is the ledger writer's view of a freshly created
// invitation. The token is returned so the caller can build the invite link;
// it is never persisted anywhere else in responses.
type InvitationSentSummary struct {
	InvitationID string    `json:"invitation_id"`
	InviteeEmail string    `json:"invitee_email"`
	Token        string    `json:"token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type DisputeRequest struct {
	Reason string `json:"reason"`
}

func (r *DisputeRequest) Validate() error {
	var errs validator.ValidationErrors

	// Reason
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if len(r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// LogAgentTimeRequest records an exchange between the acting profile and an
// agent. Agent exchanges have no counterpart to confirm them, so they are
// created confirmed.
type LogAgentTimeRequest struct {
	AgentID        string  `json:"agent_id"`
	Hours          float64 `json:"hours"`
	Description    string  `json:"description"`
	ServiceType    *string `json:"service_type,omitempty"`
	ProfileIsGiver bool    `json:"profile_is_giver"`
}

func (r *LogAgentTimeRequest) Validate() error {
	var errs validator.ValidationErrors

	// Agent ID
	if validator.IsEmpty(r.AgentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "agent_id",
			Message: "agent_id is required",
		})
	} else if !validator.IsValidUUID(r.AgentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "agent_id",
			Message: "agent_id must be a valid UUID",
		})
	}

	// Hours
	if !validator.IsValidHours(r.Hours) {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "hours must be greater than 0 and at most 24",
		})
	}

	// Description
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}
	if len(r.Description) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TransactionResponse struct {
	ID            string     `json:"id"`
	GiverID       string     `json:"giver_id"`
	ReceiverID    string     `json:"receiver_id"`
	Hours         float64    `json:"hours"`
	Description   string     `json:"description"`
	ServiceType   *string    `json:"service_type,omitempty"`
	Status        Status     `json:"status"`
	LoggedBy      string     `json:"logged_by"`
	ConfirmedBy   *string    `json:"confirmed_by,omitempty"`
	ConfirmedAt   *time.Time `json:"confirmed_at,omitempty"`
	DisputeReason *string    `json:"dispute_reason,omitempty"`
	DisputedAt    *time.Time `json:"disputed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func NewTransactionResponse(tx TimeTransaction) TransactionResponse {
	return TransactionResponse{
		ID:            tx.ID,
		GiverID:       tx.GiverID,
		ReceiverID:    tx.ReceiverID,
		Hours:         tx.Hours,
		Description:   tx.Description,
		ServiceType:   tx.ServiceType,
		Status:        tx.Status,
		LoggedBy:      tx.LoggedBy,
		ConfirmedBy:   tx.ConfirmedBy,
		ConfirmedAt:   tx.ConfirmedAt,
		DisputeReason: tx.DisputeReason,
		DisputedAt:    tx.DisputedAt,
		CreatedAt:     tx.CreatedAt,
		UpdatedAt:     tx.UpdatedAt,
	}
}

type AgentTransactionResponse struct {
	ID             string    `json:"id"`
	ProfileID      string    `json:"profile_id"`
	AgentID        string    `json:"agent_id"`
	ProfileIsGiver bool      `json:"profile_is_giver"`
	Hours          float64   `json:"hours"`
	Description    string    `json:"description"`
	ServiceType    *string   `json:"service_type,omitempty"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewAgentTransactionResponse(tx AgentTransaction) AgentTransactionResponse {
	return AgentTransactionResponse{
		ID:             tx.ID,
		ProfileID:      tx.ProfileID,
		AgentID:        tx.AgentID,
		ProfileIsGiver: tx.ProfileIsGiver,
		Hours:          tx.Hours,
		Description:    tx.Description,
		ServiceType:    tx.ServiceType,
		Status:         tx.Status,
		CreatedAt:      tx.CreatedAt,
	}
}
