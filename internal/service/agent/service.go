package agent

import (
	"context"
	"fmt"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/agent"
)

type AgentServiceImpl struct {
	agent.AgentRepository
}

func NewAgentService(agentRepository agent.AgentRepository) agent.AgentService {
	return &AgentServiceImpl{
		AgentRepository: agentRepository,
	}
}

// List implements agent.AgentService.
func (a *AgentServiceImpl) List(ctx context.Context, serviceType *string, limit int) ([]agent.AgentResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	agents, err := a.AgentRepository.List(ctx, serviceType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}

	responses := make([]agent.AgentResponse, 0, len(agents))
	for _, item := range agents {
		responses = append(responses, agent.NewAgentResponse(item))
	}

	return responses, nil
}

// GetByID implements agent.AgentService.
func (a *AgentServiceImpl) GetByID(ctx context.Context, id string) (agent.AgentResponse, error) {
	found, err := a.AgentRepository.GetByID(ctx, id)
	if err != nil {
		return agent.AgentResponse{}, err
	}
	return agent.NewAgentResponse(found), nil
}
