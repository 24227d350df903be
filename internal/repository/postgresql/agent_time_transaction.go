package postgresql

import (
	"context"
	"fmt"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/timelog"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/database"
)

type agentTimeTransactionRepositoryImpl struct {
	db *database.DB
}

// NewAgentTimeTransactionRepository creates a new agent time transaction repository instance
func NewAgentTimeTransactionRepository(db *database.DB) timelog.AgentTransactionRepository {
	return &agentTimeTransactionRepositoryImpl{db: db}
}

// Create implements timelog.AgentTransactionRepository.
func (r *agentTimeTransactionRepositoryImpl) Create(ctx context.Context, tx timelog.AgentTransaction) (timelog.AgentTransaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO agent_time_transactions (
			profile_id, agent_id, profile_is_giver, hours, description, service_type, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, profile_id, agent_id, profile_is_giver, hours, description,
				  service_type, status, created_at, updated_at
	`

	var created timelog.AgentTransaction
	err := q.QueryRow(ctx, query,
		tx.ProfileID, tx.AgentID, tx.ProfileIsGiver, tx.Hours,
		tx.Description, tx.ServiceType, tx.Status,
	).Scan(
		&created.ID, &created.ProfileID, &created.AgentID, &created.ProfileIsGiver,
		&created.Hours, &created.Description, &created.ServiceType, &created.Status,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return timelog.AgentTransaction{}, fmt.Errorf("failed to create agent time transaction: %w", err)
	}

	return created, nil
}

// ListByProfile implements timelog.AgentTransactionRepository.
func (r *agentTimeTransactionRepositoryImpl) ListByProfile(ctx context.Context, profileID string, limit int) ([]timelog.AgentTransaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, profile_id, agent_id, profile_is_giver, hours, description,
			   service_type, status, created_at, updated_at
		FROM agent_time_transactions
		WHERE profile_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list agent time transactions: %w", err)
	}
	defer rows.Close()

	var transactions []timelog.AgentTransaction
	for rows.Next() {
		var tx timelog.AgentTransaction
		err := rows.Scan(
			&tx.ID, &tx.ProfileID, &tx.AgentID, &tx.ProfileIsGiver,
			&tx.Hours, &tx.Description, &tx.ServiceType, &tx.Status,
			&tx.CreatedAt, &tx.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agent time transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return transactions, nil
}
