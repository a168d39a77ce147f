package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportFrequency string

const (
	FrequencyDaily   ReportFrequency = "daily"
	FrequencyWeekly  ReportFrequency = "weekly"
	FrequencyMonthly ReportFrequency = "monthly"
)

type ReportFilters struct {
	Status       string     `json:"status,omitempty" bson:"status,omitempty"`
	Priority     string     `json:"priority,omitempty" bson:"priority,omitempty"`
	DepartmentID string     `json:"department_id,omitempty" bson:"department_id,omitempty"`
	AssignedTo   string     `json:"assigned_to,omitempty" bson:"assigned_to,omitempty"`
	DateFrom     *time.Time `json:"date_from,omitempty" bson:"date_from,omitempty"`
	DateTo       *time.Time `json:"date_to,omitempty" bson:"date_to,omitempty"`
}

type GenerateReportRequest struct {
	ReportType    string        `json:"report_type" validate:"required"`
	Filters       ReportFilters `json:"filters"`
	IncludeCharts bool          `json:"include_charts"`
}

type ScheduleReportRequest struct {
	ReportType string        `json:"report_type" validate:"required"`
	Format     string        `json:"format" validate:"required,oneof=pdf excel"`
	Frequency  string        `json:"frequency" validate:"required,oneof=daily weekly monthly"`
	Filters    ReportFilters `json:"filters"`
	Recipients []string      `json:"recipients" validate:"dive,email"`
}

type ScheduledReport struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"user_id" bson:"user_id"`
	ReportType string             `json:"report_type" bson:"report_type"`
	Format     string             `json:"format" bson:"format"`
	Frequency  ReportFrequency    `json:"frequency" bson:"frequency"`
	Filters    ReportFilters      `json:"filters" bson:"filters"`
	Recipients []string           `json:"recipients" bson:"recipients"`
	IsActive   bool               `json:"is_active" bson:"is_active"`
	NextRun    time.Time          `json:"next_run" bson:"next_run"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

type DepartmentBreakdown struct {
	Name       string  `json:"name"`
	KPIs       int     `json:"kpis"`
	Completion float64 `json:"completion"`
}

type ReportSummary struct {
	TotalKPIs           int                   `json:"total_kpis"`
	CompletedKPIs       int                   `json:"completed_kpis"`
	OverallCompletion   float64               `json:"overall_completion"`
	MedianCompletion    float64               `json:"median_completion"`
	DepartmentBreakdown []DepartmentBreakdown `json:"department_breakdown"`
}

type ChartPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type ReportChart struct {
	Type  string       `json:"type"`
	Title string       `json:"title"`
	Data  []ChartPoint `json:"data"`
}

type Report struct {
	Title       string        `json:"title"`
	Subtitle    string        `json:"subtitle"`
	GeneratedBy string        `json:"generated_by"`
	GeneratedAt time.Time     `json:"generated_at"`
	Data        []KPI         `json:"data"`
	Summary     ReportSummary `json:"summary"`
	Charts      []ReportChart `json:"charts,omitempty"`
}

type DashboardStats struct {
	TotalKPIs         int64   `json:"total_kpis"`
	CompletedKPIs     int64   `json:"completed_kpis"`
	InProgressKPIs    int64   `json:"in_progress_kpis"`
	OverdueKPIs       int64   `json:"overdue_kpis"`
	NotStartedKPIs    int64   `json:"not_started_kpis"`
	OverallCompletion float64 `json:"overall_completion"`
	OnTrackPercentage float64 `json:"on_track_percentage"`
	AtRiskPercentage  float64 `json:"at_risk_percentage"`
}
