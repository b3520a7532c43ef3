package http

import (
	"net/http"

	"github.com/simagang/simagang-backend-go/internal/domain/dashboard"
	"github.com/simagang/simagang-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	InternOverview(w http.ResponseWriter, r *http.Request)
	ReviewerOverview(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
	}
}

// InternOverview implements DashboardHandler.
func (h *dashboardHandlerImpl) InternOverview(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.InternOverview(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ReviewerOverview implements DashboardHandler.
func (h *dashboardHandlerImpl) ReviewerOverview(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.ReviewerOverview(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
