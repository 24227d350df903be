package invitation

import "time"

// Status represents the status of an invitation
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

// Invitation is an outstanding offer to join, scoped to one inviter and one
// invitee email
type Invitation struct {
	ID             string
	InviterProfile string
	InviteeEmail   string
	InviteeName    *string
	Token          string
	Status         Status
	ExpiresAt      time.Time
	AcceptedAt     *time.Time
	CancelledAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// InvitationWithDetails carries the invitation joined with the inviter's
// display name and the attached pending log, for the public token endpoint
type InvitationWithDetails struct {
	Invitation
	InviterName string
	PendingLog  *PendingTimeLog
}

// IsExpired checks if the invitation has expired. Expiry is a read-time
// check: a row can still say pending after expires_at has passed.
func (i *Invitation) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

// CanBeAccepted checks if the invitation can still be accepted
func (i *Invitation) CanBeAccepted() bool {
	return i.Status == StatusPending && !i.IsExpired()
}

// PendingLogStatus represents the status of a deferred time log
type PendingLogStatus string

const (
	PendingLogStatusPending   PendingLogStatus = "pending"
	PendingLogStatusConverted PendingLogStatus = "converted"
	PendingLogStatusExpired   PendingLogStatus = "expired"
	PendingLogStatusCancelled PendingLogStatus = "cancelled"
)

// PendingTimeLog is the deferred half of a time transaction, attached 1:1 to
// an invitation. It converts into a real transaction exactly once, when the
// invitation is accepted.
type PendingTimeLog struct {
	ID               string
	InvitationID     string
	LoggerProfileID  string
	InviteeEmail     string
	InviteeName      *string
	Hours            float64
	Description      string
	ServiceType      *string
	Mode             string
	Status           PendingLogStatus
	ConvertedTransID *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsConvertible checks whether the log is still waiting to become a
// transaction
func (p *PendingTimeLog) IsConvertible() bool {
	return p.Status == PendingLogStatusPending
}
