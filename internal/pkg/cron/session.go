package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/aleenavigoda/yardso-sub000/internal/repository/postgresql"
)

// Expired and revoked refresh tokens are kept this long before the prune
// job removes them.
const sessionRetentionDays = 30

// SessionJobs contains session housekeeping cron jobs
type SessionJobs struct {
	tokens postgresql.JWTRepository
}

// NewSessionJobs creates session housekeeping cron jobs
func NewSessionJobs(tokens postgresql.JWTRepository) *SessionJobs {
	return &SessionJobs{tokens: tokens}
}

// RegisterJobs registers all session housekeeping cron jobs
func (j *SessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(
		"prune_expired_refresh_tokens",
		24*time.Hour,
		j.PruneExpiredRefreshTokens,
	)
}

// PruneExpiredRefreshTokens removes sessions that expired or were revoked
// past the retention window
func (j *SessionJobs) PruneExpiredRefreshTokens(ctx context.Context) error {
	count, err := j.tokens.DeleteExpired(ctx, sessionRetentionDays)
	if err != nil {
		return err
	}
	if count > 0 {
		slog.Info("Pruned expired refresh tokens", "count", count)
	}
	return nil
}
