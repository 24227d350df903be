package agent

import "context"

// AgentRepository defines data access for the agent directory
type AgentRepository interface {
	// GetByID retrieves an agent by id
	GetByID(ctx context.Context, id string) (Agent, error)

	// List returns active agents, optionally filtered by service type
	List(ctx context.Context, serviceType *string, limit int) ([]Agent, error)
}
