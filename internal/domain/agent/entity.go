package agent

import "time"

// Agent is a non-human service provider members exchange time with
type Agent struct {
	ID          string
	Name        string
	Description *string
	ServiceType *string
	AvatarURL   *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
