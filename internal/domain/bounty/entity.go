package bounty

import "time"

// Status represents the status of a bounty
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Bounty is a posted ask for help, priced in hours
type Bounty struct {
	ID              string
	PosterProfileID string
	Title           string
	Description     string
	HoursOffered    float64
	ServiceType     *string
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined for responses
	PosterName *string
}

// IsOpen checks if the bounty still accepts takers
func (b *Bounty) IsOpen() bool {
	return b.Status == StatusOpen
}
