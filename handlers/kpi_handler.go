package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	middleware "kpimanager/middlewares"
	"kpimanager/models"
	service "kpimanager/services"
	"kpimanager/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type KPIHandler struct {
	service service.KPIService
}

func NewKPIHandler(service service.KPIService) *KPIHandler {
	return &KPIHandler{
		service: service,
	}
}

func (h *KPIHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActorFromContext(r.Context())

	query := r.URL.Query()
	filter := models.KPIFilter{
		Status:       query.Get("status"),
		Priority:     query.Get("priority"),
		DepartmentID: query.Get("department"),
		AssignedTo:   query.Get("assigned_to"),
	}
	if page, err := strconv.Atoi(query.Get("page")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil {
		filter.Limit = limit
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := h.service.GetKPIs(ctx, actor, filter)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "KPIs retrieved successfully", result, http.StatusOK)
}

func (h *KPIHandler) GetKPIByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid KPI ID format", http.StatusBadRequest)
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	kpi, err := h.service.GetKPIByID(ctx, actor, objectID)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "KPI retrieved successfully", kpi, http.StatusOK)
}

func (h *KPIHandler) CreateKPI(w http.ResponseWriter, r *http.Request) {
	var req models.CreateKPIRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	kpi, err := h.service.CreateKPI(ctx, actor, &req)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "KPI created successfully", kpi, http.StatusCreated)
}

func (h *KPIHandler) UpdateKPI(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid KPI ID format", http.StatusBadRequest)
		return
	}

	var req models.UpdateKPIRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	kpi, err := h.service.UpdateKPI(ctx, actor, objectID, &req)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "KPI updated successfully", kpi, http.StatusOK)
}

func (h *KPIHandler) RecordProgress(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid KPI ID format", http.StatusBadRequest)
		return
	}

	var req models.ProgressRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	kpi, err := h.service.RecordProgress(ctx, actor, objectID, &req)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Progress recorded successfully", kpi, http.StatusOK)
}

func (h *KPIHandler) AssignKPI(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid KPI ID format", http.StatusBadRequest)
		return
	}

	var req models.AssignKPIRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	kpi, err := h.service.AssignKPI(ctx, actor, objectID, &req)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "KPI assigned successfully", kpi, http.StatusOK)
}

func (h *KPIHandler) DeleteKPI(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid KPI ID format", http.StatusBadRequest)
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.SoftDeleteKPI(ctx, actor, objectID); err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleMessageResponse(w, "KPI deleted successfully", http.StatusOK)
}

func (h *KPIHandler) GetPerformanceStats(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	stats, err := h.service.GetPerformanceStats(ctx, actor)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "KPI performance statistics retrieved successfully", stats, http.StatusOK)
}
