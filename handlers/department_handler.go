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

type DepartmentHandler struct {
	service service.DepartmentService
}

func NewDepartmentHandler(service service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{
		service: service,
	}
}

func (h *DepartmentHandler) GetDepartments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	departments, err := h.service.GetDepartments(ctx)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Departments retrieved successfully", departments, http.StatusOK)
}

func (h *DepartmentHandler) GetDepartmentByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid department ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	department, err := h.service.GetDepartmentByID(ctx, objectID)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Department retrieved successfully", department, http.StatusOK)
}

func (h *DepartmentHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDepartmentRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	department, err := h.service.CreateDepartment(ctx, actor, &req)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Department created successfully", department, http.StatusCreated)
}

func (h *DepartmentHandler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid department ID format", http.StatusBadRequest)
		return
	}

	var req models.UpdateDepartmentRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	department, err := h.service.UpdateDepartment(ctx, actor, objectID, &req)
	if err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleDataResponse(w, "Department updated successfully", department, http.StatusOK)
}

func (h *DepartmentHandler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid department ID format", http.StatusBadRequest)
		return
	}

	actor := middleware.GetActorFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.DeactivateDepartment(ctx, actor, objectID); err != nil {
		utils.HandleServiceError(w, err)
		return
	}

	utils.HandleMessageResponse(w, "Department deactivated successfully", http.StatusOK)
}
