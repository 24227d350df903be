package agent

import "context"

// AgentService defines the interface for the agent directory
type AgentService interface {
	// List returns active agents for the directory view
	List(ctx context.Context, serviceType *string, limit int) ([]AgentResponse, error)

	// GetByID returns one agent
	GetByID(ctx context.Context, id string) (AgentResponse, error)
}
