package timelog

import (
	"context"
	"time"
)

// TransactionRepository defines data access for the member-to-member ledger
type TransactionRepository interface {
	// Create inserts a new transaction (status comes from the entity)
	Create(ctx context.Context, tx TimeTransaction) (TimeTransaction, error)

	// GetByID retrieves a transaction by id
	GetByID(ctx context.Context, id string) (TimeTransaction, error)

	// ConfirmPending flips pending -> confirmed, conditioned on the stored
	// status so concurrent confirmations cannot both apply.
	// Returns false when zero rows matched (already processed).
	ConfirmPending(ctx context.Context, id, actorID string) (bool, error)

	// DisputePending flips pending -> disputed under the same condition
	DisputePending(ctx context.Context, id, actorID, reason string) (bool, error)

	// CancelPending flips pending -> cancelled under the same condition
	CancelPending(ctx context.Context, id string) (bool, error)

	// RecordNudge bumps the nudge counter and last_nudged_at, conditioned
	// on the previous nudge being at least minInterval ago (or never).
	// Returns false when the throttle window has not elapsed.
	RecordNudge(ctx context.Context, id string, minInterval time.Duration) (bool, error)

	// ListByProfile returns transactions where the profile is giver or
	// receiver, newest first, optionally filtered by status.
	ListByProfile(ctx context.Context, profileID string, status *Status, limit int) ([]TimeTransaction, error)
}

// AgentTransactionRepository defines data access for profile<->agent exchanges
type AgentTransactionRepository interface {
	Create(ctx context.Context, tx AgentTransaction) (AgentTransaction, error)
	ListByProfile(ctx context.Context, profileID string, limit int) ([]AgentTransaction, error)
}
