package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"kpimanager/lifecycle"
	"kpimanager/models"
	"kpimanager/rbac"
	repository "kpimanager/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// KPIService is the authorization façade over the KPI lifecycle: every
// operation authorizes the actor's permission first, applies role scoping,
// and only then touches the lifecycle engine and the store. A denial
// short-circuits before any repository call.
type KPIService interface {
	GetKPIs(ctx context.Context, actor rbac.Actor, filter models.KPIFilter) (*models.KPIListResponse, error)
	GetKPIByID(ctx context.Context, actor rbac.Actor, id primitive.ObjectID) (*models.KPI, error)
	CreateKPI(ctx context.Context, actor rbac.Actor, req *models.CreateKPIRequest) (*models.KPI, error)
	UpdateKPI(ctx context.Context, actor rbac.Actor, id primitive.ObjectID, req *models.UpdateKPIRequest) (*models.KPI, error)
	RecordProgress(ctx context.Context, actor rbac.Actor, id primitive.ObjectID, req *models.ProgressRequest) (*models.KPI, error)
	AssignKPI(ctx context.Context, actor rbac.Actor, id primitive.ObjectID, req *models.AssignKPIRequest) (*models.KPI, error)
	SoftDeleteKPI(ctx context.Context, actor rbac.Actor, id primitive.ObjectID) error
	GetPerformanceStats(ctx context.Context, actor rbac.Actor) ([]bson.M, error)
}

type kpiService struct {
	kpis          repository.KPIRepository
	notifications repository.NotificationRepository
}

func NewKPIService(kpis repository.KPIRepository, notifications repository.NotificationRepository) KPIService {
	return &kpiService{
		kpis:          kpis,
		notifications: notifications,
	}
}

// scopeFilter narrows a listing to what the actor's role may see: Staff see
// their own KPIs, Managers their department, Admins everything.
func scopeFilter(actor rbac.Actor, filter models.KPIFilter) models.KPIFilter {
	switch actor.Role {
	case rbac.RoleStaff:
		filter.AssignedTo = actor.ID
	case rbac.RoleManager:
		if actor.Department != "" {
			filter.DepartmentID = actor.Department
		}
	}
	return filter
}

// inScope reports whether a single KPI is visible to the actor.
func inScope(actor rbac.Actor, kpi *models.KPI) bool {
	switch actor.Role {
	case rbac.RoleStaff:
		return kpi.AssignedTo.Hex() == actor.ID
	case rbac.RoleManager:
		return actor.Department == "" || kpi.DepartmentID.Hex() == actor.Department
	default:
		return true
	}
}

func (s *kpiService) GetKPIs(ctx context.Context, actor rbac.Actor, filter models.KPIFilter) (*models.KPIListResponse, error) {
	if err := rbac.Authorize(actor, rbac.PermKPIRead); err != nil {
		return nil, err
	}

	filter = scopeFilter(actor, filter)

	kpis, totalCount, err := s.kpis.GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	for i := range kpis {
		kpis[i].CompletionPercentage = lifecycle.KPICompletion(&kpis[i])
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}
	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))

	return &models.KPIListResponse{
		KPIs: kpis,
		Pagination: models.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalCount:  totalCount,
			HasNext:     int64(page*limit) < totalCount,
			HasPrev:     page > 1,
		},
	}, nil
}

func (s *kpiService) GetKPIByID(ctx context.Context, actor rbac.Actor, id primitive.ObjectID) (*models.KPI, error) {
	if err := rbac.Authorize(actor, rbac.PermKPIRead); err != nil {
		return nil, err
	}

	kpi, err := s.kpis.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !inScope(actor, kpi) {
		return nil, ErrOutOfScope
	}

	kpi.CompletionPercentage = lifecycle.KPICompletion(kpi)
	return kpi, nil
}

func (s *kpiService) CreateKPI(ctx context.Context, actor rbac.Actor, req *models.CreateKPIRequest) (*models.KPI, error) {
	if err := rbac.Authorize(actor, rbac.PermKPICreate); err != nil {
		return nil, err
	}

	assignedTo, err := primitive.ObjectIDFromHex(req.AssignedTo)
	if err != nil {
		return nil, fmt.Errorf("invalid assignee id: %w", err)
	}
	departmentID, err := primitive.ObjectIDFromHex(req.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("invalid department id: %w", err)
	}
	createdBy, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid actor id: %w", err)
	}

	priority := models.KPIPriority(req.Priority)
	if req.Priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, fmt.Errorf("invalid priority %q", req.Priority)
	}

	now := timeNow()
	kpi := &models.KPI{
		Title:        req.Title,
		Description:  req.Description,
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		Unit:         req.Unit,
		Deadline:     req.Deadline,
		Priority:     priority,
		Status:       lifecycle.DeriveStatus(req.CurrentValue, req.TargetValue, req.Deadline, now, models.StatusNotStarted),
		AssignedTo:   assignedTo,
		DepartmentID: departmentID,
		CreatedBy:    createdBy,
		Category:     req.Category,
		IsActive:     true,
		History:      []models.ProgressEntry{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.kpis.Create(ctx, kpi); err != nil {
		return nil, err
	}

	s.notifyAssignment(ctx, kpi, assignedTo)

	kpi.CompletionPercentage = lifecycle.KPICompletion(kpi)
	return kpi, nil
}

func (s *kpiService) UpdateKPI(ctx context.Context, actor rbac.Actor, id primitive.ObjectID, req *models.UpdateKPIRequest) (*models.KPI, error) {
	if err := rbac.Authorize(actor, rbac.PermKPIUpdate); err != nil {
		return nil, err
	}

	kpi, err := s.kpis.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !inScope(actor, kpi) {
		return nil, ErrOutOfScope
	}

	if req.Title != "" {
		kpi.Title = req.Title
	}
	if req.Description != "" {
		kpi.Description = req.Description
	}
	if req.TargetValue != nil {
		kpi.TargetValue = *req.TargetValue
	}
	if req.Unit != "" {
		kpi.Unit = req.Unit
	}
	if req.Deadline != nil {
		kpi.Deadline = *req.Deadline
	}
	if req.Priority != "" {
		priority := models.KPIPriority(req.Priority)
		if !models.ValidPriority(priority) {
			return nil, fmt.Errorf("invalid priority %q", req.Priority)
		}
		kpi.Priority = priority
	}
	if req.Category != "" {
		kpi.Category = req.Category
	}

	// Target or deadline edits can change the derived status.
	now := timeNow()
	lifecycle.Refresh(kpi, now)
	kpi.UpdatedAt = now

	if err := s.kpis.Update(ctx, id, kpi); err != nil {
		return nil, err
	}

	kpi.CompletionPercentage = lifecycle.KPICompletion(kpi)
	return kpi, nil
}

func (s *kpiService) RecordProgress(ctx context.Context, actor rbac.Actor, id primitive.ObjectID, req *models.ProgressRequest) (*models.KPI, error) {
	if err := rbac.Authorize(actor, rbac.PermKPIUpdate); err != nil {
		return nil, err
	}

	kpi, err := s.kpis.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !inScope(actor, kpi) {
		return nil, ErrOutOfScope
	}

	actorID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid actor id: %w", err)
	}

	previousStatus := kpi.Status
	now := timeNow()
	kpi, err = lifecycle.RecordProgress(kpi, req.Value, req.Comment, actorID, now)
	if err != nil {
		return nil, err
	}

	entry := kpi.History[len(kpi.History)-1]
	if err := s.kpis.AppendProgress(ctx, id, entry, kpi.CurrentValue, kpi.Status); err != nil {
		return nil, err
	}

	if previousStatus != models.StatusCompleted && kpi.Status == models.StatusCompleted {
		s.notifyCompletion(ctx, kpi)
	}

	slog.Info("progress recorded",
		"kpi_id", id.Hex(),
		"value", req.Value,
		"status", kpi.Status,
		"actor_id", actor.ID)

	kpi.CompletionPercentage = lifecycle.KPICompletion(kpi)
	return kpi, nil
}

// AssignKPI reassigns a KPI and writes the assignment notification in one
// transaction, so the assignee never sees a notification for an assignment
// that did not commit.
func (s *kpiService) AssignKPI(ctx context.Context, actor rbac.Actor, id primitive.ObjectID, req *models.AssignKPIRequest) (*models.KPI, error) {
	if err := rbac.Authorize(actor, rbac.PermKPIAssign); err != nil {
		return nil, err
	}

	assignedTo, err := primitive.ObjectIDFromHex(req.AssignedTo)
	if err != nil {
		return nil, fmt.Errorf("invalid assignee id: %w", err)
	}

	kpi, err := s.kpis.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !inScope(actor, kpi) {
		return nil, ErrOutOfScope
	}

	transactionCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client := s.kpis.GetClient()
	session, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(transactionCtx)

	sessionCtx := mongo.NewSessionContext(transactionCtx, session)

	if err := session.StartTransaction(); err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}

	if err := s.kpis.Assign(sessionCtx, id, assignedTo); err != nil {
		session.AbortTransaction(sessionCtx)
		return nil, err
	}

	now := timeNow()
	notification := &models.Notification{
		Type:       models.NotificationAssignment,
		Title:      "KPI assigned to you",
		Message:    fmt.Sprintf("You have been assigned the KPI %q", kpi.Title),
		UserID:     assignedTo,
		RelatedKPI: &id,
		Priority:   kpi.Priority,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.notifications.Create(sessionCtx, notification); err != nil {
		session.AbortTransaction(sessionCtx)
		return nil, err
	}

	if err := session.CommitTransaction(sessionCtx); err != nil {
		session.AbortTransaction(sessionCtx)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	kpi.AssignedTo = assignedTo
	kpi.UpdatedAt = now
	kpi.CompletionPercentage = lifecycle.KPICompletion(kpi)
	return kpi, nil
}

func (s *kpiService) SoftDeleteKPI(ctx context.Context, actor rbac.Actor, id primitive.ObjectID) error {
	if err := rbac.Authorize(actor, rbac.PermKPIDelete); err != nil {
		return err
	}

	actorID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return fmt.Errorf("invalid actor id: %w", err)
	}

	return s.kpis.SoftDelete(ctx, id, actorID)
}

func (s *kpiService) GetPerformanceStats(ctx context.Context, actor rbac.Actor) ([]bson.M, error) {
	if err := rbac.Authorize(actor, rbac.PermAnalyticsView); err != nil {
		return nil, err
	}

	return s.kpis.PerformanceStats(ctx)
}

// Notifications are best effort: a failed insert is logged, never surfaced
// as an error on the KPI operation that triggered it.
func (s *kpiService) notifyAssignment(ctx context.Context, kpi *models.KPI, assignee primitive.ObjectID) {
	now := timeNow()
	notification := &models.Notification{
		Type:       models.NotificationAssignment,
		Title:      "New KPI assigned",
		Message:    fmt.Sprintf("You have been assigned the KPI %q", kpi.Title),
		UserID:     assignee,
		RelatedKPI: &kpi.ID,
		Priority:   kpi.Priority,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		slog.Warn("failed to create assignment notification", "kpi_id", kpi.ID.Hex(), "error", err)
	}
}

func (s *kpiService) notifyCompletion(ctx context.Context, kpi *models.KPI) {
	now := timeNow()
	notification := &models.Notification{
		Type:       models.NotificationKPICompleted,
		Title:      "KPI completed",
		Message:    fmt.Sprintf("The KPI %q has reached its target", kpi.Title),
		UserID:     kpi.CreatedBy,
		RelatedKPI: &kpi.ID,
		Priority:   kpi.Priority,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		slog.Warn("failed to create completion notification", "kpi_id", kpi.ID.Hex(), "error", err)
	}
}
