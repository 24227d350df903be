package feed

import "context"

// FeedService defines the interface for the aggregated activity feed
type FeedService interface {
	// GetFeed merges confirmed transactions from every source into grouped,
	// balance-annotated entries, newest first up to limit
	GetFeed(ctx context.Context, limit int) (FeedResponse, error)
}
