package handlers

import (
	"context"
	"net/http"
	"time"

	middleware "kpimanager/middlewares"
	service "kpimanager/services"
	"kpimanager/utils"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(service service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		service: service,
	}
}

func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	stats, err := h.service.GetStats(ctx, actor)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Dashboard statistics retrieved successfully", stats, http.StatusOK)
}
