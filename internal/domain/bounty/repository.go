package bounty

import "context"

// BountyRepository defines data access for posted bounties
type BountyRepository interface {
	// Create inserts a new bounty
	Create(ctx context.Context, b Bounty) (Bounty, error)

	// GetByID retrieves a bounty with its poster's name
	GetByID(ctx context.Context, id string) (Bounty, error)

	// ListOpen returns open bounties, newest first
	ListOpen(ctx context.Context, serviceType *string, limit int) ([]Bounty, error)

	// CloseOpen flips open -> closed, conditioned on the stored status.
	// Returns false when zero rows matched.
	CloseOpen(ctx context.Context, id string) (bool, error)
}
