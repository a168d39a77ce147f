package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"kpimanager/lifecycle"
	"kpimanager/models"
	"kpimanager/rbac"
	repository "kpimanager/repositories"

	"github.com/montanaflynn/stats"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportService interface {
	GenerateReport(ctx context.Context, actor rbac.Actor, req *models.GenerateReportRequest) (*models.Report, error)
	ScheduleReport(ctx context.Context, actor rbac.Actor, req *models.ScheduleReportRequest) (*models.ScheduledReport, error)
	GetScheduledReports(ctx context.Context, actor rbac.Actor) ([]models.ScheduledReport, error)
	CancelScheduledReport(ctx context.Context, actor rbac.Actor, id primitive.ObjectID) error
}

type reportService struct {
	kpis        repository.KPIRepository
	departments repository.DepartmentRepository
	schedules   repository.ScheduledReportRepository
}

func NewReportService(kpis repository.KPIRepository, departments repository.DepartmentRepository, schedules repository.ScheduledReportRepository) ReportService {
	return &reportService{
		kpis:        kpis,
		departments: departments,
		schedules:   schedules,
	}
}

func reportTitle(reportType string) string {
	switch reportType {
	case "kpi-summary":
		return "KPI Summary Report"
	case "department-performance":
		return "Department Performance Report"
	case "team-analytics":
		return "Team Analytics Report"
	case "trend-analysis":
		return "Trend Analysis Report"
	default:
		return "KPI Report"
	}
}

func (s *reportService) GenerateReport(ctx context.Context, actor rbac.Actor, req *models.GenerateReportRequest) (*models.Report, error) {
	if err := rbac.Authorize(actor, rbac.PermReportCreate); err != nil {
		return nil, err
	}

	query := bson.M{"is_active": true}

	// Managers report only on their department regardless of filters.
	if actor.Role == rbac.RoleManager && actor.Department != "" {
		departmentID, err := primitive.ObjectIDFromHex(actor.Department)
		if err != nil {
			return nil, err
		}
		query["department_id"] = departmentID
	}

	if req.Filters.Status != "" {
		query["status"] = req.Filters.Status
	}
	if req.Filters.Priority != "" {
		query["priority"] = req.Filters.Priority
	}
	if req.Filters.DepartmentID != "" && actor.Role != rbac.RoleManager {
		departmentID, err := primitive.ObjectIDFromHex(req.Filters.DepartmentID)
		if err != nil {
			return nil, err
		}
		query["department_id"] = departmentID
	}
	if req.Filters.AssignedTo != "" {
		assignedTo, err := primitive.ObjectIDFromHex(req.Filters.AssignedTo)
		if err != nil {
			return nil, err
		}
		query["assigned_to"] = assignedTo
	}
	if req.Filters.DateFrom != nil || req.Filters.DateTo != nil {
		created := bson.M{}
		if req.Filters.DateFrom != nil {
			created["$gte"] = *req.Filters.DateFrom
		}
		if req.Filters.DateTo != nil {
			created["$lte"] = *req.Filters.DateTo
		}
		query["created_at"] = created
	}

	kpis, err := s.kpis.Find(ctx, query)
	if err != nil {
		return nil, err
	}

	departments, err := s.departments.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	departmentNames := make(map[primitive.ObjectID]string, len(departments))
	for _, d := range departments {
		departmentNames[d.ID] = d.Name
	}

	completions := make([]float64, 0, len(kpis))
	completedCount := 0
	type breakdown struct {
		kpis            int
		totalCompletion float64
	}
	byDepartment := map[string]*breakdown{}

	for i := range kpis {
		kpis[i].CompletionPercentage = lifecycle.KPICompletion(&kpis[i])
		completions = append(completions, kpis[i].CompletionPercentage)
		if kpis[i].Status == models.StatusCompleted {
			completedCount++
		}

		name, ok := departmentNames[kpis[i].DepartmentID]
		if !ok {
			name = "No Department"
		}
		b, ok := byDepartment[name]
		if !ok {
			b = &breakdown{}
			byDepartment[name] = b
		}
		b.kpis++
		b.totalCompletion += kpis[i].CompletionPercentage
	}

	summary := models.ReportSummary{
		TotalKPIs:     len(kpis),
		CompletedKPIs: completedCount,
	}
	if len(completions) > 0 {
		mean, err := stats.Mean(completions)
		if err != nil {
			return nil, err
		}
		median, err := stats.Median(completions)
		if err != nil {
			return nil, err
		}
		summary.OverallCompletion = math.Round(mean)
		summary.MedianCompletion = math.Round(median)
	}
	for name, b := range byDepartment {
		summary.DepartmentBreakdown = append(summary.DepartmentBreakdown, models.DepartmentBreakdown{
			Name:       name,
			KPIs:       b.kpis,
			Completion: math.Round(b.totalCompletion / float64(b.kpis)),
		})
	}

	report := &models.Report{
		Title:       reportTitle(req.ReportType),
		Subtitle:    fmt.Sprintf("Generated for %s: %s", actor.Role, actor.Email),
		GeneratedBy: actor.Email,
		GeneratedAt: timeNow(),
		Data:        kpis,
		Summary:     summary,
	}

	if req.IncludeCharts {
		statusCounts := map[models.KPIStatus]float64{}
		for i := range kpis {
			statusCounts[kpis[i].Status]++
		}
		statusChart := models.ReportChart{
			Type:  "pie",
			Title: "KPI Status Distribution",
			Data: []models.ChartPoint{
				{Name: string(models.StatusCompleted), Value: statusCounts[models.StatusCompleted]},
				{Name: string(models.StatusInProgress), Value: statusCounts[models.StatusInProgress]},
				{Name: string(models.StatusOverdue), Value: statusCounts[models.StatusOverdue]},
				{Name: string(models.StatusNotStarted), Value: statusCounts[models.StatusNotStarted]},
			},
		}

		departmentChart := models.ReportChart{
			Type:  "bar",
			Title: "Department Performance",
		}
		for _, b := range summary.DepartmentBreakdown {
			departmentChart.Data = append(departmentChart.Data, models.ChartPoint{Name: b.Name, Value: b.Completion})
		}

		report.Charts = []models.ReportChart{statusChart, departmentChart}
	}

	return report, nil
}

// nextRun computes the next delivery time for a schedule frequency.
func nextRun(frequency models.ReportFrequency, now time.Time) time.Time {
	switch frequency {
	case models.FrequencyDaily:
		return now.AddDate(0, 0, 1)
	case models.FrequencyWeekly:
		return now.AddDate(0, 0, 7)
	case models.FrequencyMonthly:
		return now.AddDate(0, 1, 0)
	default:
		return now.AddDate(0, 0, 1)
	}
}

func (s *reportService) ScheduleReport(ctx context.Context, actor rbac.Actor, req *models.ScheduleReportRequest) (*models.ScheduledReport, error) {
	if err := rbac.Authorize(actor, rbac.PermReportSchedule); err != nil {
		return nil, err
	}

	userID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, err
	}

	now := timeNow()
	report := &models.ScheduledReport{
		UserID:     userID,
		ReportType: req.ReportType,
		Format:     req.Format,
		Frequency:  models.ReportFrequency(req.Frequency),
		Filters:    req.Filters,
		Recipients: req.Recipients,
		IsActive:   true,
		NextRun:    nextRun(models.ReportFrequency(req.Frequency), now),
		CreatedAt:  now,
	}

	if err := s.schedules.Create(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

func (s *reportService) GetScheduledReports(ctx context.Context, actor rbac.Actor) ([]models.ScheduledReport, error) {
	if err := rbac.Authorize(actor, rbac.PermReportRead); err != nil {
		return nil, err
	}

	// Admins see every schedule, everyone else only their own.
	if actor.Role == rbac.RoleAdmin {
		return s.schedules.GetAll(ctx)
	}

	userID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, err
	}
	return s.schedules.GetForUser(ctx, userID)
}

func (s *reportService) CancelScheduledReport(ctx context.Context, actor rbac.Actor, id primitive.ObjectID) error {
	if err := rbac.Authorize(actor, rbac.PermReportSchedule); err != nil {
		return err
	}

	userID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return err
	}

	return s.schedules.Deactivate(ctx, id, userID)
}
