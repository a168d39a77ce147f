package handlers

import (
	"context"
	"net/http"
	"time"

	middleware "kpimanager/middlewares"
	"kpimanager/models"
	service "kpimanager/services"
	"kpimanager/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(service service.ReportService) *ReportHandler {
	return &ReportHandler{
		service: service,
	}
}

func (h *ReportHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateReportRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	report, err := h.service.GenerateReport(ctx, actor, &req)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Report generated successfully", report, http.StatusOK)
}

func (h *ReportHandler) ScheduleReport(w http.ResponseWriter, r *http.Request) {
	var req models.ScheduleReportRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	report, err := h.service.ScheduleReport(ctx, actor, &req)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Report scheduled successfully", report, http.StatusCreated)
}

func (h *ReportHandler) GetScheduledReports(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	reports, err := h.service.GetScheduledReports(ctx, actor)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Scheduled reports retrieved successfully", reports, http.StatusOK)
}

func (h *ReportHandler) CancelScheduledReport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid report ID format", http.StatusBadRequest)
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.CancelScheduledReport(ctx, actor, objectID); err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleMessageResponse(w, "Scheduled report cancelled successfully", http.StatusOK)
}
