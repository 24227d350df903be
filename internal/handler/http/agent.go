package http

import (
	"net/http"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/agent"
	"github.com/aleenavigoda/yardso-sub000/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AgentHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type AgentHandlerImpl struct {
	agentService agent.AgentService
}

// List implements AgentHandler.
func (h *AgentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var serviceType *string
	if raw := r.URL.Query().Get("service_type"); raw != "" {
		serviceType = &raw
	}
	limit := getIntQueryParam(r, "limit", 50)

	result, err := h.agentService.List(r.Context(), serviceType, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements AgentHandler.
func (h *AgentHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	agentID := chi.URLParam(r, "id")
	if agentID == "" {
		response.BadRequest(w, "Agent ID is required", nil)
		return
	}

	result, err := h.agentService.GetByID(r.Context(), agentID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func NewAgentHandler(agentService agent.AgentService) AgentHandler {
	return &AgentHandlerImpl{
		agentService: agentService,
	}
}
