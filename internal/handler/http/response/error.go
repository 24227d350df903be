package response

import (
	"errors"
	"net/http"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/agent"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/auth"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/bounty"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/invitation"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/notification"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/profile"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/timelog"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenCookieNotFound),
		errors.Is(err, auth.ErrRefreshTokenCookieEmpty):
		Unauthorized(w, "Refresh token missing")
	case errors.Is(err, auth.ErrEmailNotVerified):
		Forbidden(w, "Email not verified")
	case errors.Is(err, auth.ErrProfileRequired):
		Forbidden(w, "Profile required, verify your email first")
	case errors.Is(err, auth.ErrEmailTaken):
		Conflict(w, "Email already registered")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// Profile domain errors
	case errors.Is(err, profile.ErrProfileNotFound):
		NotFound(w, "Profile not found")
	case errors.Is(err, profile.ErrProfileAlreadyExists):
		Conflict(w, "Profile already exists")

	// Time ledger domain errors
	case errors.Is(err, timelog.ErrTransactionNotFound):
		NotFound(w, "Transaction not found")
	case errors.Is(err, timelog.ErrSelfExchange):
		BadRequest(w, "You cannot log time with yourself", nil)
	case errors.Is(err, timelog.ErrNotParticipant):
		Forbidden(w, "You are not part of this transaction")
	case errors.Is(err, timelog.ErrNotCounterpart):
		Forbidden(w, "Only the other party can confirm or dispute")
	case errors.Is(err, timelog.ErrNotLogger):
		Forbidden(w, "Only the member who logged this transaction can do that")
	case errors.Is(err, timelog.ErrAlreadyProcessed):
		Conflict(w, "Transaction already processed")
	case errors.Is(err, timelog.ErrNudgeTooSoon):
		TooManyRequests(w, "A reminder was already sent recently")

	// Invitation domain errors
	case errors.Is(err, invitation.ErrInvitationNotFound):
		NotFound(w, "Invitation not found")
	case errors.Is(err, invitation.ErrInvitationExpired):
		Gone(w, "Invitation expired")
	case errors.Is(err, invitation.ErrInvitationAlreadyUsed):
		Conflict(w, "Invitation already used")
	case errors.Is(err, invitation.ErrInvitationCancelled):
		Conflict(w, "Invitation cancelled")
	case errors.Is(err, invitation.ErrNotInviter):
		Forbidden(w, "Only the inviter can cancel this invitation")
	case errors.Is(err, invitation.ErrPendingLogNotFound):
		NotFound(w, "Pending time log not found")

	// Agent domain errors
	case errors.Is(err, agent.ErrAgentNotFound):
		NotFound(w, "Agent not found")
	case errors.Is(err, agent.ErrAgentInactive):
		BadRequest(w, "Agent is not active", nil)

	// Bounty domain errors
	case errors.Is(err, bounty.ErrBountyNotFound):
		NotFound(w, "Bounty not found")
	case errors.Is(err, bounty.ErrBountyClosed):
		Conflict(w, "Bounty already closed")
	case errors.Is(err, bounty.ErrNotPoster):
		Forbidden(w, "Only the poster can close this bounty")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
