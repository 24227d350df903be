package http

import (
	"net/http"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/dashboard"
	"github.com/aleenavigoda/yardso-sub000/internal/handler/http/response"
)

type DashboardHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	GetTimeBalance(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

// Get implements DashboardHandler.
func (h *DashboardHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	profileID := getProfileIDFromContext(r)
	if profileID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.dashboardService.GetDashboard(r.Context(), profileID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetTimeBalance implements DashboardHandler.
func (h *DashboardHandlerImpl) GetTimeBalance(w http.ResponseWriter, r *http.Request) {
	profileID := getProfileIDFromContext(r)
	if profileID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.dashboardService.GetTimeBalance(r.Context(), profileID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{
		dashboardService: dashboardService,
	}
}
