package invitation

import "errors"

var (
	ErrInvitationNotFound    = errors.New("invitation not found")
	ErrInvitationExpired     = errors.New("invitation has expired")
	ErrInvitationAlreadyUsed = errors.New("invitation has already been used")
	ErrInvitationCancelled   = errors.New("invitation has been cancelled")
	ErrNotInviter            = errors.New("only the inviter may cancel this invitation")
	ErrPendingLogNotFound    = errors.New("pending time log not found")
)
