package dashboard

import "context"

// BalanceStats combines the confirmed-ledger sums and pending counts for one
// profile in a single query
type BalanceStats struct {
	HoursGiven      float64
	HoursReceived   float64
	PendingIncoming int64
	PendingOutgoing int64
}

// Repository defines dashboard data access
type Repository interface {
	// GetBalanceStats aggregates confirmed given/received hours and pending
	// counts for a profile
	GetBalanceStats(ctx context.Context, profileID string) (BalanceStats, error)

	// GetAgentHours sums confirmed hours the profile received from agents
	GetAgentHours(ctx context.Context, profileID string) (float64, error)

	// CountRecentConfirmed counts confirmed transactions involving the
	// profile in the last days
	CountRecentConfirmed(ctx context.Context, profileID string, days int) (int64, error)

	// CountOpenBounties counts open bounties across the network
	CountOpenBounties(ctx context.Context) (int64, error)
}
