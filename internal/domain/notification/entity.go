package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeInvitationSent       NotificationType = "invitation_sent"
	TypeTimeLogged           NotificationType = "time_logged"
	TypeTransactionConfirmed NotificationType = "transaction_confirmed"
	TypeTransactionDisputed  NotificationType = "transaction_disputed"
	TypeNudgeReminder        NotificationType = "nudge_reminder"
	TypeInvitationAccepted   NotificationType = "invitation_accepted"
)

// Notification represents an in-app notification entity
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
