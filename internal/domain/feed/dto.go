package feed

import "time"

// Receiver is one recipient inside a grouped feed entry
type Receiver struct {
	ProfileID string  `json:"profile_id"`
	Name      string  `json:"name"`
	Hours     float64 `json:"hours"`
}

// GroupedTransaction is a derived display unit: one or more confirmed
// transactions sharing the same giver, description, and hour bucket. It is
// never persisted.
type GroupedTransaction struct {
	Key         string     `json:"key"`
	Source      SourceKind `json:"source"`
	GiverID     string     `json:"giver_id"`
	GiverName   string     `json:"giver_name"`
	Receivers   []Receiver `json:"receivers"`
	Description string     `json:"description"`
	ServiceType *string    `json:"service_type,omitempty"`
	TotalHours  float64    `json:"total_hours"`
	IsGroup     bool       `json:"is_group"`
	IsBalanced  bool       `json:"is_balanced"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FeedResponse - GET /feed
type FeedResponse struct {
	Items []GroupedTransaction `json:"items"`
}
