package timelog

import "time"

// Status represents the lifecycle state of a time transaction
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusDisputed  Status = "disputed"
	StatusCancelled Status = "cancelled"
)

// IsValid reports whether s is a known lifecycle state.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDisputed, StatusCancelled:
		return true
	}
	return false
}

// Mode is the direction of an exchange from the logger's point of view.
type Mode string

const (
	// ModeHelped means the logger gave their time to the counterpart.
	ModeHelped Mode = "helped"
	// ModeWasHelped means the counterpart gave their time to the logger.
	ModeWasHelped Mode = "wasHelped"
)

// IsValid reports whether m is a known direction.
func (m Mode) IsValid() bool {
	return m == ModeHelped || m == ModeWasHelped
}

// GiverReceiver resolves the giver and receiver profile ids for a
// transaction logged by loggerID against counterpartID.
func (m Mode) GiverReceiver(loggerID, counterpartID string) (giverID, receiverID string) {
	if m == ModeHelped {
		return loggerID, counterpartID
	}
	return counterpartID, loggerID
}

// TimeTransaction is a ledger entry between two profiles. Exactly one
// party logs it; only the other party may confirm or dispute it.
type TimeTransaction struct {
	ID            string
	GiverID       string
	ReceiverID    string
	Hours         float64
	Description   string
	ServiceType   *string
	Status        Status
	LoggedBy      string
	ConfirmedBy   *string
	ConfirmedAt   *time.Time
	DisputeReason *string
	DisputedAt    *time.Time
	CancelledAt   *time.Time
	NudgeCount    int
	LastNudgedAt  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CounterpartOf returns the profile on the other side of the exchange
// from profileID, and whether profileID participates at all.
func (t *TimeTransaction) CounterpartOf(profileID string) (string, bool) {
	switch profileID {
	case t.GiverID:
		return t.ReceiverID, true
	case t.ReceiverID:
		return t.GiverID, true
	default:
		return "", false
	}
}

// IsTerminal reports whether the transaction can no longer transition.
func (t *TimeTransaction) IsTerminal() bool {
	return t.Status != StatusPending
}

// CanBeActedOnBy reports whether profileID may confirm or dispute:
// the counterpart who did not log the exchange.
func (t *TimeTransaction) CanBeActedOnBy(profileID string) bool {
	_, involved := t.CounterpartOf(profileID)
	return involved && profileID != t.LoggedBy
}

// AgentTransaction is a time exchange between a profile and a
// non-human agent. Agents settle instantly, so these are created
// confirmed and never enter the pending workflow.
type AgentTransaction struct {
	ID             string
	ProfileID      string
	AgentID        string
	ProfileIsGiver bool
	Hours          float64
	Description    string
	ServiceType    *string
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
