package dashboard

// TimeBalanceResponse is the balance projection for one profile. All sums
// cover confirmed transactions only; pending counts are informational.
type TimeBalanceResponse struct {
	ProfileID       string  `json:"profile_id"`
	BalanceHours    float64 `json:"balance_hours"`
	HoursGiven      float64 `json:"hours_given"`
	HoursReceived   float64 `json:"hours_received"`
	PendingIncoming int64   `json:"pending_incoming"` // awaiting the profile's confirmation
	PendingOutgoing int64   `json:"pending_outgoing"` // logged by the profile, awaiting counterpart
	AgentHours      float64 `json:"agent_hours"`
	UpdatedAt       string  `json:"updated_at"`
}

// DashboardResponse is the combined response for the main dashboard endpoint
type DashboardResponse struct {
	TimeBalance    TimeBalanceResponse `json:"time_balance"`
	RecentActivity int64               `json:"recent_activity"` // confirmed in last 30 days
	OpenBounties   int64               `json:"open_bounties"`
}
