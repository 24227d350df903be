package invitation

import (
	"context"
	"time"
)

// InvitationRepository defines the interface for invitation data access
type InvitationRepository interface {
	// Create creates a new invitation record
	Create(ctx context.Context, inv Invitation) (Invitation, error)

	// GetByID retrieves an invitation by id
	GetByID(ctx context.Context, id string) (Invitation, error)

	// GetByToken retrieves an invitation by its opaque token
	GetByToken(ctx context.Context, token string) (Invitation, error)

	// GetByTokenWithDetails retrieves an invitation by token joined with the
	// inviter's display name and the attached pending log
	GetByTokenWithDetails(ctx context.Context, token string) (InvitationWithDetails, error)

	// GetPendingByInviterAndEmail finds an outstanding non-expired pending
	// invitation from one inviter to one email, for reuse instead of
	// stacking duplicates
	GetPendingByInviterAndEmail(ctx context.Context, inviterProfileID, email string) (Invitation, error)

	// ListByInviter lists invitations sent by a profile, newest first
	ListByInviter(ctx context.Context, inviterProfileID string) ([]Invitation, error)

	// ClaimPending flips pending -> accepted, conditioned on the stored
	// status so two accepts of the same token cannot both claim it.
	// Returns false when zero rows matched.
	ClaimPending(ctx context.Context, id string, acceptedAt time.Time) (bool, error)

	// MarkCancelled marks an invitation as cancelled
	MarkCancelled(ctx context.Context, id string) error

	// UpdateToken rotates the token and pushes the expiry forward (for
	// re-sending to the same invitee)
	UpdateToken(ctx context.Context, id, newToken string, expiresAt time.Time) error

	// ExpireOverdue marks pending invitations past their expiry as expired,
	// returning the affected ids. Read paths do not depend on this; it
	// keeps stored status aligned for listings.
	ExpireOverdue(ctx context.Context) ([]string, error)
}

// PendingTimeLogRepository defines the interface for deferred-log data access
type PendingTimeLogRepository interface {
	// Create creates a pending log attached to an invitation
	Create(ctx context.Context, log PendingTimeLog) (PendingTimeLog, error)

	// GetByInvitationID retrieves the log attached to an invitation
	GetByInvitationID(ctx context.Context, invitationID string) (PendingTimeLog, error)

	// MarkConverted flips pending -> converted with a back-reference to the
	// created transaction, conditioned on the stored status.
	// Returns false when zero rows matched.
	MarkConverted(ctx context.Context, id, transactionID string) (bool, error)

	// MarkCancelled marks a pending log as cancelled
	MarkCancelled(ctx context.Context, id string) error

	// ReplacePayload overwrites the deferred exchange on an invitation that
	// is being reused for a new log to the same invitee
	ReplacePayload(ctx context.Context, id string, hours float64, description string, serviceType *string, mode string) error

	// ExpireByInvitationIDs marks logs attached to the given invitations as
	// expired
	ExpireByInvitationIDs(ctx context.Context, invitationIDs []string) error
}
