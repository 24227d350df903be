package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/invitation"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/profile"
)

// Staged sign-up records that never verified are kept this long before the
// purge job removes them.
const pendingProfileRetentionDays = 30

// InvitationJobs contains invitation-related cron jobs
type InvitationJobs struct {
	invitationService invitation.InvitationService
	pendingProfiles   profile.PendingProfileRepository
}

// NewInvitationJobs creates invitation cron jobs
func NewInvitationJobs(invitationService invitation.InvitationService, pendingProfiles profile.PendingProfileRepository) *InvitationJobs {
	return &InvitationJobs{
		invitationService: invitationService,
		pendingProfiles:   pendingProfiles,
	}
}

// RegisterJobs registers all invitation-related cron jobs
func (j *InvitationJobs) RegisterJobs(scheduler *Scheduler) {
	// Align stored invitation status with the clock every hour. Read paths
	// already treat overdue rows as expired; this keeps listings honest.
	scheduler.AddJob(
		"expire_overdue_invitations",
		1*time.Hour,
		j.ExpireOverdueInvitations,
	)

	// Purge abandoned sign-up staging daily
	scheduler.AddJob(
		"purge_stale_pending_profiles",
		24*time.Hour,
		j.PurgeStalePendingProfiles,
	)
}

// ExpireOverdueInvitations marks overdue pending invitations and their
// attached logs as expired
func (j *InvitationJobs) ExpireOverdueInvitations(ctx context.Context) error {
	count, err := j.invitationService.ExpireOverdue(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		slog.Info("Expired overdue invitations", "count", count)
	}
	return nil
}

// PurgeStalePendingProfiles removes staged sign-ups that never verified
func (j *InvitationJobs) PurgeStalePendingProfiles(ctx context.Context) error {
	count, err := j.pendingProfiles.DeleteOlderThan(ctx, pendingProfileRetentionDays)
	if err != nil {
		return err
	}
	if count > 0 {
		slog.Info("Purged stale pending profiles", "count", count)
	}
	return nil
}
