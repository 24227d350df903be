package postgresql

import (
	"context"
	"fmt"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/dashboard"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

// NewDashboardRepository creates a new dashboard repository instance
func NewDashboardRepository(db *database.DB) dashboard.Repository {
	return &dashboardRepositoryImpl{db: db}
}

// GetBalanceStats implements dashboard.Repository.
// One pass over the profile's transactions produces all four numbers.
func (r *dashboardRepositoryImpl) GetBalanceStats(ctx context.Context, profileID string) (dashboard.BalanceStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(hours) FILTER (WHERE status = 'confirmed' AND giver_id = $1), 0),
			COALESCE(SUM(hours) FILTER (WHERE status = 'confirmed' AND receiver_id = $1), 0),
			COUNT(*) FILTER (WHERE status = 'pending' AND logged_by != $1),
			COUNT(*) FILTER (WHERE status = 'pending' AND logged_by = $1)
		FROM time_transactions
		WHERE giver_id = $1 OR receiver_id = $1
	`

	var stats dashboard.BalanceStats
	err := q.QueryRow(ctx, query, profileID).Scan(
		&stats.HoursGiven,
		&stats.HoursReceived,
		&stats.PendingIncoming,
		&stats.PendingOutgoing,
	)
	if err != nil {
		return dashboard.BalanceStats{}, fmt.Errorf("failed to get balance stats: %w", err)
	}

	return stats, nil
}

// GetAgentHours implements dashboard.Repository.
func (r *dashboardRepositoryImpl) GetAgentHours(ctx context.Context, profileID string) (float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(hours), 0)
		FROM agent_time_transactions
		WHERE profile_id = $1 AND status = 'confirmed' AND profile_is_giver = FALSE
	`

	var hours float64
	err := q.QueryRow(ctx, query, profileID).Scan(&hours)
	if err != nil {
		return 0, fmt.Errorf("failed to sum agent hours: %w", err)
	}

	return hours, nil
}

// CountRecentConfirmed implements dashboard.Repository.
func (r *dashboardRepositoryImpl) CountRecentConfirmed(ctx context.Context, profileID string, days int) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM time_transactions
		WHERE status = 'confirmed'
		  AND (giver_id = $1 OR receiver_id = $1)
		  AND confirmed_at > NOW() - ($2 || ' days')::INTERVAL
	`

	var count int64
	err := q.QueryRow(ctx, query, profileID, days).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count recent transactions: %w", err)
	}

	return count, nil
}

// CountOpenBounties implements dashboard.Repository.
func (r *dashboardRepositoryImpl) CountOpenBounties(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COUNT(*) FROM bounties WHERE status = 'open'`

	var count int64
	err := q.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count open bounties: %w", err)
	}

	return count, nil
}
