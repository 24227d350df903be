package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/feed"
)

const (
	// balanceWindow and balanceTolerance define when two opposite exchanges
	// between the same pair read as an even trade.
	balanceWindow    = 24 * time.Hour
	balanceTolerance = 0.5
)

type FeedServiceImpl struct {
	sources    []feed.TransactionSource
	reciprocal feed.ReciprocalChecker
}

func NewFeedService(reciprocal feed.ReciprocalChecker, sources ...feed.TransactionSource) feed.FeedService {
	return &FeedServiceImpl{
		sources:    sources,
		reciprocal: reciprocal,
	}
}

// GetFeed implements feed.FeedService.
func (f *FeedServiceImpl) GetFeed(ctx context.Context, limit int) (feed.FeedResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}

	var merged []feed.FeedTransaction
	for _, source := range f.sources {
		transactions, err := source.ListConfirmed(ctx, limit)
		if err != nil {
			// One broken source must not blank the whole feed
			slog.Warn("Feed source failed", "source", source.Name(), "error", err)
			continue
		}
		merged = append(merged, transactions...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	groups := groupTransactions(merged)
	if len(groups) > limit {
		groups = groups[:limit]
	}

	// Balance annotation applies to one-on-one member entries only
	for i := range groups {
		if groups[i].IsGroup || groups[i].Source != feed.SourceMember {
			continue
		}
		receiver := groups[i].Receivers[0]
		balanced, err := f.reciprocal.HasReciprocal(ctx,
			groups[i].GiverID, receiver.ProfileID, receiver.Hours,
			groups[i].CreatedAt, balanceWindow, balanceTolerance)
		if err != nil {
			slog.Warn("Failed to check reciprocal transaction",
				"key", groups[i].Key, "error", err)
			continue
		}
		groups[i].IsBalanced = balanced
	}

	return feed.FeedResponse{Items: groups}, nil
}

// groupTransactions folds transactions sharing (giver, description, hour
// bucket) into single entries, preserving newest-first order.
func groupTransactions(transactions []feed.FeedTransaction) []feed.GroupedTransaction {
	var ordered []feed.GroupedTransaction
	index := make(map[string]int)

	for _, tx := range transactions {
		key := groupKey(tx)

		if i, ok := index[key]; ok {
			ordered[i].Receivers = append(ordered[i].Receivers, feed.Receiver{
				ProfileID: tx.ReceiverID,
				Name:      tx.ReceiverName,
				Hours:     tx.Hours,
			})
			ordered[i].TotalHours += tx.Hours
			ordered[i].IsGroup = true
			continue
		}

		index[key] = len(ordered)
		ordered = append(ordered, feed.GroupedTransaction{
			Key:       key,
			Source:    tx.Source,
			GiverID:   tx.GiverID,
			GiverName: tx.GiverName,
			Receivers: []feed.Receiver{{
				ProfileID: tx.ReceiverID,
				Name:      tx.ReceiverName,
				Hours:     tx.Hours,
			}},
			Description: tx.Description,
			ServiceType: tx.ServiceType,
			TotalHours:  tx.Hours,
			CreatedAt:   tx.CreatedAt,
		})
	}

	return ordered
}

// groupKey buckets by giver, description, and the hour the exchange was
// logged in, so one session given to five people reads as one event.
func groupKey(tx feed.FeedTransaction) string {
	bucket := tx.CreatedAt.UTC().Truncate(time.Hour).Format(time.RFC3339)
	return fmt.Sprintf("%s|%s|%s", tx.GiverID, tx.Description, bucket)
}
