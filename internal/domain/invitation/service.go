package invitation

import "context"

// InvitationService defines the interface for invitation business logic
type InvitationService interface {
	// CreateAndSend stores an invitation with its pending log atomically and
	// emails the invite link. An outstanding pending invitation to the same
	// email from the same inviter is reused with a fresh payload instead of
	// creating a duplicate.
	CreateAndSend(ctx context.Context, req CreateRequest) (CreateResult, error)

	// GetByToken retrieves invitation details by token (public endpoint).
	// Expiry is checked against the clock, not the stored status.
	GetByToken(ctx context.Context, token string) (InvitationDetailResponse, error)

	// Accept claims the invitation for a newly registered profile and
	// converts the attached pending log into a real transaction. Retrying
	// an already-accepted token returns the same outcome without writing.
	Accept(ctx context.Context, token, newProfileID string) (AcceptResponse, error)

	// Cancel withdraws a pending invitation; only the inviter may call it
	Cancel(ctx context.Context, actorProfileID, invitationID string) error

	// ListByInviter lists invitations the acting profile has sent
	ListByInviter(ctx context.Context, inviterProfileID string) ([]SentInvitationResponse, error)

	// ExpireOverdue aligns stored status with the clock for invitations and
	// their pending logs (cron)
	ExpireOverdue(ctx context.Context) (int64, error)
}
