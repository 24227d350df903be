package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/timelog"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timeTransactionRepositoryImpl struct {
	db *database.DB
}

// NewTimeTransactionRepository creates a new time transaction repository instance
func NewTimeTransactionRepository(db *database.DB) timelog.TransactionRepository {
	return &timeTransactionRepositoryImpl{db: db}
}

// Create implements timelog.TransactionRepository.
func (r *timeTransactionRepositoryImpl) Create(ctx context.Context, tx timelog.TimeTransaction) (timelog.TimeTransaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_transactions (
			giver_id, receiver_id, hours, description, service_type, status, logged_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, giver_id, receiver_id, hours, description, service_type, status,
				  logged_by, confirmed_by, confirmed_at, dispute_reason, disputed_at,
				  nudge_count, last_nudged_at, created_at, updated_at
	`

	var created timelog.TimeTransaction
	err := q.QueryRow(ctx, query,
		tx.GiverID, tx.ReceiverID, tx.Hours, tx.Description,
		tx.ServiceType, tx.Status, tx.LoggedBy,
	).Scan(
		&created.ID, &created.GiverID, &created.ReceiverID, &created.Hours,
		&created.Description, &created.ServiceType, &created.Status,
		&created.LoggedBy, &created.ConfirmedBy, &created.ConfirmedAt,
		&created.DisputeReason, &created.DisputedAt,
		&created.NudgeCount, &created.LastNudgedAt,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return timelog.TimeTransaction{}, fmt.Errorf("failed to create time transaction: %w", err)
	}

	return created, nil
}

// GetByID implements timelog.TransactionRepository.
func (r *timeTransactionRepositoryImpl) GetByID(ctx context.Context, id string) (timelog.TimeTransaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, giver_id, receiver_id, hours, description, service_type, status,
			   logged_by, confirmed_by, confirmed_at, dispute_reason, disputed_at,
			   nudge_count, last_nudged_at, created_at, updated_at
		FROM time_transactions
		WHERE id = $1
	`

	var found timelog.TimeTransaction
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID, &found.GiverID, &found.ReceiverID, &found.Hours,
		&found.Description, &found.ServiceType, &found.Status,
		&found.LoggedBy, &found.ConfirmedBy, &found.ConfirmedAt,
		&found.DisputeReason, &found.DisputedAt,
		&found.NudgeCount, &found.LastNudgedAt,
		&found.CreatedAt, &found.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return timelog.TimeTransaction{}, timelog.ErrTransactionNotFound
		}
		return timelog.TimeTransaction{}, fmt.Errorf("failed to get time transaction: %w", err)
	}

	return found, nil
}

// ConfirmPending implements timelog.TransactionRepository.
// The status guard in the WHERE clause makes the transition race-safe: of
// two concurrent confirms only one matches a row, the other sees zero rows.
func (r *timeTransactionRepositoryImpl) ConfirmPending(ctx context.Context, id, actorID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_transactions
		SET status = 'confirmed', confirmed_by = $1, confirmed_at = NOW(), updated_at = NOW()
		WHERE id = $2 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, actorID, id)
	if err != nil {
		return false, fmt.Errorf("failed to confirm time transaction: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// DisputePending implements timelog.TransactionRepository.
func (r *timeTransactionRepositoryImpl) DisputePending(ctx context.Context, id, actorID, reason string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_transactions
		SET status = 'disputed', confirmed_by = $1, dispute_reason = $2,
			disputed_at = NOW(), updated_at = NOW()
		WHERE id = $3 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, actorID, reason, id)
	if err != nil {
		return false, fmt.Errorf("failed to dispute time transaction: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// CancelPending implements timelog.TransactionRepository.
func (r *timeTransactionRepositoryImpl) CancelPending(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_transactions
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to cancel time transaction: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// RecordNudge implements timelog.TransactionRepository.
// The throttle lives in the WHERE clause so two racing nudges cannot both
// pass the interval check.
func (r *timeTransactionRepositoryImpl) RecordNudge(ctx context.Context, id string, minInterval time.Duration) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_transactions
		SET nudge_count = nudge_count + 1, last_nudged_at = NOW(), updated_at = NOW()
		WHERE id = $1
		  AND status = 'pending'
		  AND (last_nudged_at IS NULL OR last_nudged_at <= NOW() - ($2 || ' seconds')::INTERVAL)
	`

	tag, err := q.Exec(ctx, query, id, int64(minInterval.Seconds()))
	if err != nil {
		return false, fmt.Errorf("failed to record nudge: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ListByProfile implements timelog.TransactionRepository.
func (r *timeTransactionRepositoryImpl) ListByProfile(ctx context.Context, profileID string, status *timelog.Status, limit int) ([]timelog.TimeTransaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, giver_id, receiver_id, hours, description, service_type, status,
			   logged_by, confirmed_by, confirmed_at, dispute_reason, disputed_at,
			   nudge_count, last_nudged_at, created_at, updated_at
		FROM time_transactions
		WHERE (giver_id = $1 OR receiver_id = $1)
		  AND ($2::TEXT IS NULL OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := q.Query(ctx, query, profileID, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list time transactions: %w", err)
	}
	defer rows.Close()

	var transactions []timelog.TimeTransaction
	for rows.Next() {
		var tx timelog.TimeTransaction
		err := rows.Scan(
			&tx.ID, &tx.GiverID, &tx.ReceiverID, &tx.Hours,
			&tx.Description, &tx.ServiceType, &tx.Status,
			&tx.LoggedBy, &tx.ConfirmedBy, &tx.ConfirmedAt,
			&tx.DisputeReason, &tx.DisputedAt,
			&tx.NudgeCount, &tx.LastNudgedAt,
			&tx.CreatedAt, &tx.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return transactions, nil
}
