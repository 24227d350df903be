package postgresql

import (
	"context"
	"fmt"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/agent"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type agentRepositoryImpl struct {
	db *database.DB
}

// NewAgentRepository creates a new agent repository instance
func NewAgentRepository(db *database.DB) agent.AgentRepository {
	return &agentRepositoryImpl{db: db}
}

// GetByID implements agent.AgentRepository.
func (r *agentRepositoryImpl) GetByID(ctx context.Context, id string) (agent.Agent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, service_type, avatar_url, is_active,
			   created_at, updated_at
		FROM agents
		WHERE id = $1
	`

	var found agent.Agent
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID, &found.Name, &found.Description, &found.ServiceType,
		&found.AvatarURL, &found.IsActive, &found.CreatedAt, &found.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return agent.Agent{}, agent.ErrAgentNotFound
		}
		return agent.Agent{}, fmt.Errorf("failed to get agent: %w", err)
	}

	return found, nil
}

// List implements agent.AgentRepository.
func (r *agentRepositoryImpl) List(ctx context.Context, serviceType *string, limit int) ([]agent.Agent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, service_type, avatar_url, is_active,
			   created_at, updated_at
		FROM agents
		WHERE is_active = TRUE
		  AND ($1::TEXT IS NULL OR service_type = $1)
		ORDER BY name
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, serviceType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	defer rows.Close()

	var agents []agent.Agent
	for rows.Next() {
		var a agent.Agent
		err := rows.Scan(
			&a.ID, &a.Name, &a.Description, &a.ServiceType,
			&a.AvatarURL, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agent: %w", err)
		}
		agents = append(agents, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return agents, nil
}
