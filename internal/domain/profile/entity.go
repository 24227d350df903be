package profile

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Profile entity
type Profile struct {
	ID          string
	UserID      string
	Email       string
	FullName    string
	DisplayName string
	Bio         *string
	Location    *string
	AvatarURL   *string

	// BalanceHours is derived from confirmed transactions and recomputed on
	// confirmation, never written by hand.
	BalanceHours float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PendingProfile stages profile fields captured at sign-up, before the email
// is verified. It is consumed and deleted when the Profile materializes.
type PendingProfile struct {
	ID          string
	Email       string
	FullName    string
	DisplayName string
	Bio         *string
	Location    *string

	// TimeLog carries an exchange the user described during sign-up. It is
	// replayed through the ledger writer after the profile is created.
	TimeLog *StagedTimeLog

	CreatedAt time.Time
}

// StagedTimeLog is the JSONB payload of a time log deferred until sign-up
// completes
type StagedTimeLog struct {
	ContactEmail string  `json:"contact_email"`
	ContactName  *string `json:"contact_name,omitempty"`
	Mode         string  `json:"mode"`
	Hours        float64 `json:"hours"`
	Description  string  `json:"description"`
	ServiceType  *string `json:"service_type,omitempty"`
}

// Value implements driver.Valuer for database storage
func (s StagedTimeLog) Value() (driver.Value, error) {
	if s.ContactEmail == "" {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for database retrieval
func (s *StagedTimeLog) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan StagedTimeLog: invalid type")
	}

	return json.Unmarshal(bytes, s)
}
