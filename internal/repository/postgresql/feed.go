package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/feed"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/database"
)

type memberTransactionSource struct {
	db *database.DB
}

// NewMemberTransactionSource returns the feed source backed by the
// member-to-member ledger
func NewMemberTransactionSource(db *database.DB) feed.TransactionSource {
	return &memberTransactionSource{db: db}
}

// Name implements feed.TransactionSource.
func (s *memberTransactionSource) Name() string {
	return "member"
}

// ListConfirmed implements feed.TransactionSource.
func (s *memberTransactionSource) ListConfirmed(ctx context.Context, limit int) ([]feed.FeedTransaction, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT t.id, t.giver_id, giver.display_name, t.receiver_id, receiver.display_name,
			   t.hours, t.description, t.service_type, t.created_at
		FROM time_transactions t
		JOIN profiles giver ON giver.id = t.giver_id
		JOIN profiles receiver ON receiver.id = t.receiver_id
		WHERE t.status = 'confirmed'
		ORDER BY t.created_at DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list confirmed member transactions: %w", err)
	}
	defer rows.Close()

	var transactions []feed.FeedTransaction
	for rows.Next() {
		tx := feed.FeedTransaction{Source: feed.SourceMember}
		err := rows.Scan(
			&tx.ID, &tx.GiverID, &tx.GiverName, &tx.ReceiverID, &tx.ReceiverName,
			&tx.Hours, &tx.Description, &tx.ServiceType, &tx.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member feed transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return transactions, nil
}

type agentTransactionSource struct {
	db *database.DB
}

// NewAgentTransactionSource returns the feed source backed by the
// profile-to-agent ledger. Giver and receiver are oriented from the
// profile_is_giver flag so agent exchanges group exactly like member ones.
func NewAgentTransactionSource(db *database.DB) feed.TransactionSource {
	return &agentTransactionSource{db: db}
}

// Name implements feed.TransactionSource.
func (s *agentTransactionSource) Name() string {
	return "agent"
}

// ListConfirmed implements feed.TransactionSource.
func (s *agentTransactionSource) ListConfirmed(ctx context.Context, limit int) ([]feed.FeedTransaction, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT t.id,
			   CASE WHEN t.profile_is_giver THEN t.profile_id ELSE t.agent_id END,
			   CASE WHEN t.profile_is_giver THEN p.display_name ELSE a.name END,
			   CASE WHEN t.profile_is_giver THEN t.agent_id ELSE t.profile_id END,
			   CASE WHEN t.profile_is_giver THEN a.name ELSE p.display_name END,
			   t.hours, t.description, t.service_type, t.created_at
		FROM agent_time_transactions t
		JOIN profiles p ON p.id = t.profile_id
		JOIN agents a ON a.id = t.agent_id
		WHERE t.status = 'confirmed'
		ORDER BY t.created_at DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list confirmed agent transactions: %w", err)
	}
	defer rows.Close()

	var transactions []feed.FeedTransaction
	for rows.Next() {
		tx := feed.FeedTransaction{Source: feed.SourceAgent}
		err := rows.Scan(
			&tx.ID, &tx.GiverID, &tx.GiverName, &tx.ReceiverID, &tx.ReceiverName,
			&tx.Hours, &tx.Description, &tx.ServiceType, &tx.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agent feed transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return transactions, nil
}

type reciprocalCheckerImpl struct {
	db *database.DB
}

// NewReciprocalChecker returns the balance-detection lookup over the member
// ledger
func NewReciprocalChecker(db *database.DB) feed.ReciprocalChecker {
	return &reciprocalCheckerImpl{db: db}
}

// HasReciprocal implements feed.ReciprocalChecker.
func (r *reciprocalCheckerImpl) HasReciprocal(ctx context.Context, giverID, receiverID string, hours float64, at time.Time, window time.Duration, tolerance float64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM time_transactions
			WHERE status = 'confirmed'
			  AND giver_id = $1 AND receiver_id = $2
			  AND created_at BETWEEN $3 AND $4
			  AND ABS(hours - $5) < $6
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query,
		receiverID, giverID,
		at.Add(-window), at.Add(window),
		hours, tolerance,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check reciprocal transaction: %w", err)
	}

	return exists, nil
}
