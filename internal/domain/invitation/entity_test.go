package invitation

import (
	"testing"
	"time"
)

func TestInvitationIsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{"future expiry", time.Now().Add(time.Hour), false},
		{"past expiry", time.Now().Add(-time.Hour), true},
		{"barely alive", time.Now().Add(time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := Invitation{ExpiresAt: tt.expiresAt}
			if got := inv.IsExpired(); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInvitationCanBeAccepted(t *testing.T) {
	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	tests := []struct {
		name      string
		status    Status
		expiresAt time.Time
		want      bool
	}{
		{"pending and fresh", StatusPending, future, true},
		{"pending but overdue", StatusPending, past, false},
		{"already accepted", StatusAccepted, future, false},
		{"cancelled", StatusCancelled, future, false},
		{"marked expired", StatusExpired, future, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := Invitation{Status: tt.status, ExpiresAt: tt.expiresAt}
			if got := inv.CanBeAccepted(); got != tt.want {
				t.Errorf("CanBeAccepted() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPendingTimeLogIsConvertible(t *testing.T) {
	tests := []struct {
		status PendingLogStatus
		want   bool
	}{
		{PendingLogStatusPending, true},
		{PendingLogStatusConverted, false},
		{PendingLogStatusExpired, false},
		{PendingLogStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			log := PendingTimeLog{Status: tt.status}
			if got := log.IsConvertible(); got != tt.want {
				t.Errorf("IsConvertible() = %v, want %v", got, tt.want)
			}
		})
	}
}
