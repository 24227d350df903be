package postgresql

import (
	"context"
	"fmt"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/invitation"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type pendingTimeLogRepositoryImpl struct {
	db *database.DB
}

// NewPendingTimeLogRepository creates a new pending time log repository instance
func NewPendingTimeLogRepository(db *database.DB) invitation.PendingTimeLogRepository {
	return &pendingTimeLogRepositoryImpl{db: db}
}

// Create implements invitation.PendingTimeLogRepository.
func (r *pendingTimeLogRepositoryImpl) Create(ctx context.Context, log invitation.PendingTimeLog) (invitation.PendingTimeLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pending_time_logs (
			invitation_id, logger_profile_id, invitee_email, invitee_name,
			hours, description, service_type, mode, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, invitation_id, logger_profile_id, invitee_email, invitee_name,
				  hours, description, service_type, mode, status,
				  converted_transaction_id, created_at, updated_at
	`

	var created invitation.PendingTimeLog
	err := q.QueryRow(ctx, query,
		log.InvitationID, log.LoggerProfileID, log.InviteeEmail, log.InviteeName,
		log.Hours, log.Description, log.ServiceType, log.Mode, log.Status,
	).Scan(
		&created.ID, &created.InvitationID, &created.LoggerProfileID,
		&created.InviteeEmail, &created.InviteeName,
		&created.Hours, &created.Description, &created.ServiceType,
		&created.Mode, &created.Status,
		&created.ConvertedTransID, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return invitation.PendingTimeLog{}, fmt.Errorf("failed to create pending time log: %w", err)
	}

	return created, nil
}

// GetByInvitationID implements invitation.PendingTimeLogRepository.
func (r *pendingTimeLogRepositoryImpl) GetByInvitationID(ctx context.Context, invitationID string) (invitation.PendingTimeLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, invitation_id, logger_profile_id, invitee_email, invitee_name,
			   hours, description, service_type, mode, status,
			   converted_transaction_id, created_at, updated_at
		FROM pending_time_logs
		WHERE invitation_id = $1
	`

	var found invitation.PendingTimeLog
	err := q.QueryRow(ctx, query, invitationID).Scan(
		&found.ID, &found.InvitationID, &found.LoggerProfileID,
		&found.InviteeEmail, &found.InviteeName,
		&found.Hours, &found.Description, &found.ServiceType,
		&found.Mode, &found.Status,
		&found.ConvertedTransID, &found.CreatedAt, &found.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return invitation.PendingTimeLog{}, invitation.ErrPendingLogNotFound
		}
		return invitation.PendingTimeLog{}, fmt.Errorf("failed to get pending time log: %w", err)
	}

	return found, nil
}

// MarkConverted implements invitation.PendingTimeLogRepository.
// Race-safe for the same reason as invitation claiming: only one conversion
// can match the pending row.
func (r *pendingTimeLogRepositoryImpl) MarkConverted(ctx context.Context, id, transactionID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE pending_time_logs
		SET status = 'converted', converted_transaction_id = $1, updated_at = NOW()
		WHERE id = $2 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, transactionID, id)
	if err != nil {
		return false, fmt.Errorf("failed to mark pending time log as converted: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// MarkCancelled implements invitation.PendingTimeLogRepository.
func (r *pendingTimeLogRepositoryImpl) MarkCancelled(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE pending_time_logs
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return invitation.ErrPendingLogNotFound
		}
		return fmt.Errorf("failed to mark pending time log as cancelled: %w", err)
	}

	return nil
}

// ReplacePayload implements invitation.PendingTimeLogRepository.
func (r *pendingTimeLogRepositoryImpl) ReplacePayload(ctx context.Context, id string, hours float64, description string, serviceType *string, mode string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE pending_time_logs
		SET hours = $1, description = $2, service_type = $3, mode = $4, updated_at = NOW()
		WHERE id = $5 AND status = 'pending'
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, hours, description, serviceType, mode, id).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return invitation.ErrPendingLogNotFound
		}
		return fmt.Errorf("failed to replace pending time log payload: %w", err)
	}

	return nil
}

// ExpireByInvitationIDs implements invitation.PendingTimeLogRepository.
func (r *pendingTimeLogRepositoryImpl) ExpireByInvitationIDs(ctx context.Context, invitationIDs []string) error {
	if len(invitationIDs) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE pending_time_logs
		SET status = 'expired', updated_at = NOW()
		WHERE invitation_id = ANY($1) AND status = 'pending'
	`

	_, err := q.Exec(ctx, query, invitationIDs)
	if err != nil {
		return fmt.Errorf("failed to expire pending time logs: %w", err)
	}

	return nil
}
