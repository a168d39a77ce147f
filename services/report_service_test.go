package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"kpimanager/models"
	"kpimanager/rbac"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeDepartmentRepo struct {
	departments []models.Department
}

func (r *fakeDepartmentRepo) Create(ctx context.Context, d *models.Department) error {
	d.ID = primitive.NewObjectID()
	r.departments = append(r.departments, *d)
	return nil
}

func (r *fakeDepartmentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Department, error) {
	for i := range r.departments {
		if r.departments[i].ID == id {
			return &r.departments[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeDepartmentRepo) GetByName(ctx context.Context, name string) (*models.Department, error) {
	return nil, errors.New("not found")
}

func (r *fakeDepartmentRepo) GetAll(ctx context.Context) ([]models.Department, error) {
	return r.departments, nil
}

func (r *fakeDepartmentRepo) Update(ctx context.Context, id primitive.ObjectID, d *models.Department) error {
	return nil
}

func (r *fakeDepartmentRepo) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

type fakeScheduleRepo struct {
	schedules   []models.ScheduledReport
	getAllHits  int
	forUserHits int
}

func (r *fakeScheduleRepo) Create(ctx context.Context, s *models.ScheduledReport) error {
	s.ID = primitive.NewObjectID()
	r.schedules = append(r.schedules, *s)
	return nil
}

func (r *fakeScheduleRepo) GetAll(ctx context.Context) ([]models.ScheduledReport, error) {
	r.getAllHits++
	return r.schedules, nil
}

func (r *fakeScheduleRepo) GetForUser(ctx context.Context, userID primitive.ObjectID) ([]models.ScheduledReport, error) {
	r.forUserHits++
	var out []models.ScheduledReport
	for _, s := range r.schedules {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeScheduleRepo) Deactivate(ctx context.Context, id, userID primitive.ObjectID) error {
	return nil
}

func TestNextRun(t *testing.T) {
	from := time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC)

	if got := nextRun(models.FrequencyDaily, from); !got.Equal(from.AddDate(0, 0, 1)) {
		t.Errorf("daily: got %v", got)
	}
	if got := nextRun(models.FrequencyWeekly, from); !got.Equal(from.AddDate(0, 0, 7)) {
		t.Errorf("weekly: got %v", got)
	}
	// Jan 31 + 1 month normalizes per time.AddDate
	if got := nextRun(models.FrequencyMonthly, from); !got.Equal(from.AddDate(0, 1, 0)) {
		t.Errorf("monthly: got %v", got)
	}
	// unknown frequency falls back to daily
	if got := nextRun("hourly", from); !got.Equal(from.AddDate(0, 0, 1)) {
		t.Errorf("fallback: got %v", got)
	}
}

func TestGenerateReportSummary(t *testing.T) {
	freezeClock(t)
	department := primitive.NewObjectID()

	done := testKPI(primitive.NewObjectID(), department)
	done.CurrentValue = 100
	done.Status = models.StatusCompleted

	half := testKPI(primitive.NewObjectID(), department)
	half.CurrentValue = 50

	repo := newFakeKPIRepo(done, half)
	departments := &fakeDepartmentRepo{departments: []models.Department{
		{ID: department, Name: "Sales"},
	}}
	svc := NewReportService(repo, departments, &fakeScheduleRepo{})

	admin := rbac.Actor{ID: primitive.NewObjectID().Hex(), Email: "admin@example.com", Role: rbac.RoleAdmin}
	report, err := svc.GenerateReport(context.Background(), admin, &models.GenerateReportRequest{
		ReportType:    "kpi-summary",
		IncludeCharts: true,
	})
	if err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}

	if report.Title != "KPI Summary Report" {
		t.Errorf("title = %q", report.Title)
	}
	if report.Summary.TotalKPIs != 2 || report.Summary.CompletedKPIs != 1 {
		t.Errorf("summary counts = %+v", report.Summary)
	}
	// completions are 100 and 50, mean and median both 75
	if report.Summary.OverallCompletion != 75 {
		t.Errorf("overall completion = %v, want 75", report.Summary.OverallCompletion)
	}
	if report.Summary.MedianCompletion != 75 {
		t.Errorf("median completion = %v, want 75", report.Summary.MedianCompletion)
	}
	if len(report.Summary.DepartmentBreakdown) != 1 {
		t.Fatalf("department breakdown = %+v", report.Summary.DepartmentBreakdown)
	}
	b := report.Summary.DepartmentBreakdown[0]
	if b.Name != "Sales" || b.KPIs != 2 || b.Completion != 75 {
		t.Errorf("breakdown = %+v", b)
	}
	if len(report.Charts) != 2 {
		t.Fatalf("charts = %d, want 2", len(report.Charts))
	}
}

func TestGenerateReportDenied(t *testing.T) {
	freezeClock(t)
	svc := NewReportService(newFakeKPIRepo(), &fakeDepartmentRepo{}, &fakeScheduleRepo{})

	staff := staffActor(primitive.NewObjectID())
	_, err := svc.GenerateReport(context.Background(), staff, &models.GenerateReportRequest{ReportType: "kpi-summary"})
	var denied *rbac.PermissionDeniedError
	if !errors.As(err, &denied) || denied.Permission != rbac.PermReportCreate {
		t.Fatalf("got %v, want denial of report:create", err)
	}
}

func TestScheduleReport(t *testing.T) {
	freezeClock(t)
	schedules := &fakeScheduleRepo{}
	svc := NewReportService(newFakeKPIRepo(), &fakeDepartmentRepo{}, schedules)

	admin := rbac.Actor{ID: primitive.NewObjectID().Hex(), Role: rbac.RoleAdmin}
	got, err := svc.ScheduleReport(context.Background(), admin, &models.ScheduleReportRequest{
		ReportType: "kpi-summary",
		Format:     "pdf",
		Frequency:  "weekly",
		Recipients: []string{"team@example.com"},
	})
	if err != nil {
		t.Fatalf("ScheduleReport: %v", err)
	}
	if !got.IsActive {
		t.Error("schedule not active")
	}
	if !got.NextRun.Equal(testTime.AddDate(0, 0, 7)) {
		t.Errorf("next run = %v, want one week out", got.NextRun)
	}

	// managers lack report:schedule
	manager := managerActor(primitive.NewObjectID())
	_, err = svc.ScheduleReport(context.Background(), manager, &models.ScheduleReportRequest{
		ReportType: "kpi-summary", Format: "pdf", Frequency: "daily",
	})
	var denied *rbac.PermissionDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("manager schedule: got %v, want denial", err)
	}
}

func TestGetScheduledReportsScoping(t *testing.T) {
	freezeClock(t)
	schedules := &fakeScheduleRepo{}
	svc := NewReportService(newFakeKPIRepo(), &fakeDepartmentRepo{}, schedules)

	admin := rbac.Actor{ID: primitive.NewObjectID().Hex(), Role: rbac.RoleAdmin}
	if _, err := svc.GetScheduledReports(context.Background(), admin); err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if schedules.getAllHits != 1 {
		t.Error("admin listing should read every schedule")
	}

	manager := managerActor(primitive.NewObjectID())
	if _, err := svc.GetScheduledReports(context.Background(), manager); err != nil {
		t.Fatalf("manager list: %v", err)
	}
	if schedules.forUserHits != 1 {
		t.Error("manager listing should be scoped to own schedules")
	}
}
