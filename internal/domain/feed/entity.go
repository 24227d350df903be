package feed

import (
	"context"
	"time"
)

// SourceKind identifies which ledger a feed entry came from
type SourceKind string

const (
	SourceMember SourceKind = "member"
	SourceAgent  SourceKind = "agent"
)

// FeedTransaction is the source-agnostic shape the aggregator works on.
// Both the member ledger and the agent ledger project into it.
type FeedTransaction struct {
	ID           string
	Source       SourceKind
	GiverID      string
	GiverName    string
	ReceiverID   string
	ReceiverName string
	Hours        float64
	Description  string
	ServiceType  *string
	CreatedAt    time.Time
}

// TransactionSource is one ledger the feed draws from. Sources fail
// independently: one source erroring must not take down the feed.
type TransactionSource interface {
	// Name identifies the source in logs
	Name() string

	// ListConfirmed returns confirmed transactions, newest first
	ListConfirmed(ctx context.Context, limit int) ([]FeedTransaction, error)
}

// ReciprocalChecker answers whether a confirmed transaction in the opposite
// direction of similar size exists near a reference time
type ReciprocalChecker interface {
	// HasReciprocal reports whether a confirmed transaction in the opposite
	// direction exists within the window around at and within tolerance
	// of hours
	HasReciprocal(ctx context.Context, giverID, receiverID string, hours float64, at time.Time, window time.Duration, tolerance float64) (bool, error)
}
