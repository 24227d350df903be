package agent

import "time"

type AgentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	ServiceType *string   `json:"service_type,omitempty"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewAgentResponse(a Agent) AgentResponse {
	return AgentResponse{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		ServiceType: a.ServiceType,
		AvatarURL:   a.AvatarURL,
		CreatedAt:   a.CreatedAt,
	}
}
