package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/dashboard"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/profile"
	"golang.org/x/sync/errgroup"
)

// recentActivityDays is the lookback for the recent activity counter
const recentActivityDays = 30

type DashboardServiceImpl struct {
	dashboard.Repository
	profileRepo profile.ProfileRepository
}

func NewDashboardService(repo dashboard.Repository, profileRepository profile.ProfileRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		Repository:  repo,
		profileRepo: profileRepository,
	}
}

// GetTimeBalance implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetTimeBalance(ctx context.Context, profileID string) (*dashboard.TimeBalanceResponse, error) {
	profileData, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	stats, err := s.GetBalanceStats(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance stats: %w", err)
	}

	agentHours, err := s.GetAgentHours(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get agent hours: %w", err)
	}

	return &dashboard.TimeBalanceResponse{
		ProfileID:       profileID,
		BalanceHours:    profileData.BalanceHours,
		HoursGiven:      stats.HoursGiven,
		HoursReceived:   stats.HoursReceived,
		PendingIncoming: stats.PendingIncoming,
		PendingOutgoing: stats.PendingOutgoing,
		AgentHours:      agentHours,
		UpdatedAt:       profileData.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// GetDashboard returns combined dashboard data using parallel goroutines,
// each with a single query.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, profileID string) (*dashboard.DashboardResponse, error) {
	var (
		profileData    profile.Profile
		stats          dashboard.BalanceStats
		agentHours     float64
		recentActivity int64
		openBounties   int64
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Profile row (cached balance + updated_at)
	g.Go(func() error {
		var err error
		profileData, err = s.profileRepo.GetByID(gCtx, profileID)
		return err
	})

	// 2. Confirmed sums and pending counts
	g.Go(func() error {
		var err error
		stats, err = s.GetBalanceStats(gCtx, profileID)
		return err
	})

	// 3. Agent hours
	g.Go(func() error {
		var err error
		agentHours, err = s.GetAgentHours(gCtx, profileID)
		return err
	})

	// 4. Confirmed activity in the last 30 days
	g.Go(func() error {
		var err error
		recentActivity, err = s.CountRecentConfirmed(gCtx, profileID, recentActivityDays)
		return err
	})

	// 5. Open bounties across the network
	g.Go(func() error {
		var err error
		openBounties, err = s.CountOpenBounties(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard.DashboardResponse{
		TimeBalance: dashboard.TimeBalanceResponse{
			ProfileID:       profileID,
			BalanceHours:    profileData.BalanceHours,
			HoursGiven:      stats.HoursGiven,
			HoursReceived:   stats.HoursReceived,
			PendingIncoming: stats.PendingIncoming,
			PendingOutgoing: stats.PendingOutgoing,
			AgentHours:      agentHours,
			UpdatedAt:       profileData.UpdatedAt.Format(time.RFC3339),
		},
		RecentActivity: recentActivity,
		OpenBounties:   openBounties,
	}, nil
}
