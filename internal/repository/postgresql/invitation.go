package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/invitation"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type invitationRepositoryImpl struct {
	db *database.DB
}

// NewInvitationRepository creates a new invitation repository instance
func NewInvitationRepository(db *database.DB) invitation.InvitationRepository {
	return &invitationRepositoryImpl{db: db}
}

// Create implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) Create(ctx context.Context, inv invitation.Invitation) (invitation.Invitation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO invitations (
			inviter_profile_id, invitee_email, invitee_name, token, status, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, inviter_profile_id, invitee_email, invitee_name, token, status,
				  expires_at, accepted_at, cancelled_at, created_at, updated_at
	`

	var created invitation.Invitation
	err := q.QueryRow(ctx, query,
		inv.InviterProfile, inv.InviteeEmail, inv.InviteeName,
		inv.Token, inv.Status, inv.ExpiresAt,
	).Scan(
		&created.ID, &created.InviterProfile, &created.InviteeEmail, &created.InviteeName,
		&created.Token, &created.Status, &created.ExpiresAt,
		&created.AcceptedAt, &created.CancelledAt, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return invitation.Invitation{}, fmt.Errorf("failed to create invitation: %w", err)
	}

	return created, nil
}

// GetByID implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) GetByID(ctx context.Context, id string) (invitation.Invitation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, inviter_profile_id, invitee_email, invitee_name, token, status,
			   expires_at, accepted_at, cancelled_at, created_at, updated_at
		FROM invitations
		WHERE id = $1
	`

	var inv invitation.Invitation
	err := q.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.InviterProfile, &inv.InviteeEmail, &inv.InviteeName,
		&inv.Token, &inv.Status, &inv.ExpiresAt,
		&inv.AcceptedAt, &inv.CancelledAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return inv, invitation.ErrInvitationNotFound
		}
		return inv, fmt.Errorf("failed to get invitation by id: %w", err)
	}

	return inv, nil
}

// GetByToken implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) GetByToken(ctx context.Context, token string) (invitation.Invitation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, inviter_profile_id, invitee_email, invitee_name, token, status,
			   expires_at, accepted_at, cancelled_at, created_at, updated_at
		FROM invitations
		WHERE token = $1
	`

	var inv invitation.Invitation
	err := q.QueryRow(ctx, query, token).Scan(
		&inv.ID, &inv.InviterProfile, &inv.InviteeEmail, &inv.InviteeName,
		&inv.Token, &inv.Status, &inv.ExpiresAt,
		&inv.AcceptedAt, &inv.CancelledAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return inv, invitation.ErrInvitationNotFound
		}
		return inv, fmt.Errorf("failed to get invitation by token: %w", err)
	}

	return inv, nil
}

// GetByTokenWithDetails implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) GetByTokenWithDetails(ctx context.Context, token string) (invitation.InvitationWithDetails, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			i.id, i.inviter_profile_id, i.invitee_email, i.invitee_name, i.token,
			i.status, i.expires_at, i.accepted_at, i.cancelled_at, i.created_at, i.updated_at,
			p.display_name AS inviter_name,
			ptl.id, ptl.invitation_id, ptl.logger_profile_id, ptl.invitee_email,
			ptl.invitee_name, ptl.hours, ptl.description, ptl.service_type, ptl.mode,
			ptl.status, ptl.converted_transaction_id, ptl.created_at, ptl.updated_at
		FROM invitations i
		JOIN profiles p ON p.id = i.inviter_profile_id
		LEFT JOIN pending_time_logs ptl ON ptl.invitation_id = i.id
		WHERE i.token = $1
	`

	var inv invitation.InvitationWithDetails
	var logID, logInvitationID, logLoggerID, logEmail *string
	var logName *string
	var logHours *float64
	var logDescription, logServiceType, logMode *string
	var logStatus *invitation.PendingLogStatus
	var logConvertedID *string
	var logCreatedAt, logUpdatedAt *time.Time

	err := q.QueryRow(ctx, query, token).Scan(
		&inv.ID, &inv.InviterProfile, &inv.InviteeEmail, &inv.InviteeName, &inv.Token,
		&inv.Status, &inv.ExpiresAt, &inv.AcceptedAt, &inv.CancelledAt,
		&inv.CreatedAt, &inv.UpdatedAt,
		&inv.InviterName,
		&logID, &logInvitationID, &logLoggerID, &logEmail,
		&logName, &logHours, &logDescription, &logServiceType, &logMode,
		&logStatus, &logConvertedID, &logCreatedAt, &logUpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return inv, invitation.ErrInvitationNotFound
		}
		return inv, fmt.Errorf("failed to get invitation by token: %w", err)
	}

	if logID != nil {
		inv.PendingLog = &invitation.PendingTimeLog{
			ID:               *logID,
			InvitationID:     *logInvitationID,
			LoggerProfileID:  *logLoggerID,
			InviteeEmail:     *logEmail,
			InviteeName:      logName,
			Hours:            *logHours,
			Description:      *logDescription,
			ServiceType:      logServiceType,
			Mode:             *logMode,
			Status:           *logStatus,
			ConvertedTransID: logConvertedID,
			CreatedAt:        *logCreatedAt,
			UpdatedAt:        *logUpdatedAt,
		}
	}

	return inv, nil
}

// GetPendingByInviterAndEmail implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) GetPendingByInviterAndEmail(ctx context.Context, inviterProfileID, email string) (invitation.Invitation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, inviter_profile_id, invitee_email, invitee_name, token, status,
			   expires_at, accepted_at, cancelled_at, created_at, updated_at
		FROM invitations
		WHERE inviter_profile_id = $1 AND invitee_email = $2
		  AND status = 'pending' AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	var inv invitation.Invitation
	err := q.QueryRow(ctx, query, inviterProfileID, email).Scan(
		&inv.ID, &inv.InviterProfile, &inv.InviteeEmail, &inv.InviteeName,
		&inv.Token, &inv.Status, &inv.ExpiresAt,
		&inv.AcceptedAt, &inv.CancelledAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return inv, invitation.ErrInvitationNotFound
		}
		return inv, fmt.Errorf("failed to get pending invitation: %w", err)
	}

	return inv, nil
}

// ListByInviter implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) ListByInviter(ctx context.Context, inviterProfileID string) ([]invitation.Invitation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, inviter_profile_id, invitee_email, invitee_name, token, status,
			   expires_at, accepted_at, cancelled_at, created_at, updated_at
		FROM invitations
		WHERE inviter_profile_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, inviterProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	var invitations []invitation.Invitation
	for rows.Next() {
		var inv invitation.Invitation
		err := rows.Scan(
			&inv.ID, &inv.InviterProfile, &inv.InviteeEmail, &inv.InviteeName,
			&inv.Token, &inv.Status, &inv.ExpiresAt,
			&inv.AcceptedAt, &inv.CancelledAt, &inv.CreatedAt, &inv.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return invitations, nil
}

// ClaimPending implements invitation.InvitationRepository.
// The status guard makes acceptance race-safe: of two concurrent accepts of
// the same token only one claims the row.
func (r *invitationRepositoryImpl) ClaimPending(ctx context.Context, id string, acceptedAt time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE invitations
		SET status = 'accepted', accepted_at = $1, updated_at = NOW()
		WHERE id = $2 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, acceptedAt, id)
	if err != nil {
		return false, fmt.Errorf("failed to claim invitation: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// MarkCancelled implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) MarkCancelled(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE invitations
		SET status = 'cancelled', cancelled_at = NOW(), updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return invitation.ErrInvitationNotFound
		}
		return fmt.Errorf("failed to mark invitation as cancelled: %w", err)
	}

	return nil
}

// UpdateToken implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) UpdateToken(ctx context.Context, id, newToken string, expiresAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE invitations
		SET token = $1, expires_at = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, newToken, expiresAt, id).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return invitation.ErrInvitationNotFound
		}
		return fmt.Errorf("failed to update invitation token: %w", err)
	}

	return nil
}

// ExpireOverdue implements invitation.InvitationRepository.
func (r *invitationRepositoryImpl) ExpireOverdue(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE invitations
		SET status = 'expired', updated_at = NOW()
		WHERE status = 'pending' AND expires_at <= NOW()
		RETURNING id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to expire invitations: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan invitation id: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return ids, nil
}
