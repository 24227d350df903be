package bounty

import "context"

// BountyService defines the interface for bounty business logic
type BountyService interface {
	// Create posts a new bounty by the acting profile
	Create(ctx context.Context, posterProfileID string, req CreateBountyRequest) (BountyResponse, error)

	// GetByID returns one bounty
	GetByID(ctx context.Context, id string) (BountyResponse, error)

	// ListOpen returns open bounties for browsing
	ListOpen(ctx context.Context, serviceType *string, limit int) ([]BountyResponse, error)

	// Close withdraws a bounty; only the poster may call it
	Close(ctx context.Context, actorProfileID, bountyID string) (BountyResponse, error)
}
