package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns combined dashboard data using goroutines
	GetDashboard(ctx context.Context, profileID string) (*DashboardResponse, error)

	// GetTimeBalance returns the balance projection for one profile
	GetTimeBalance(ctx context.Context, profileID string) (*TimeBalanceResponse, error)
}
