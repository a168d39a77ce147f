package services

import (
	"context"
	"errors"
	"testing"

	"kpimanager/models"
	"kpimanager/rbac"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGetStats(t *testing.T) {
	freezeClock(t)
	department := primitive.NewObjectID()

	completed := testKPI(primitive.NewObjectID(), department)
	completed.CurrentValue = 100
	completed.Status = models.StatusCompleted

	inProgress := testKPI(primitive.NewObjectID(), department)
	inProgress.CurrentValue = 50

	overdue := testKPI(primitive.NewObjectID(), department)
	overdue.Status = models.StatusOverdue
	overdue.CurrentValue = 10

	repo := newFakeKPIRepo(completed, inProgress, overdue)
	svc := NewDashboardService(repo)

	admin := rbac.Actor{ID: primitive.NewObjectID().Hex(), Role: rbac.RoleAdmin}
	stats, err := svc.GetStats(context.Background(), admin)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	if stats.TotalKPIs != 3 {
		t.Errorf("total = %d, want 3", stats.TotalKPIs)
	}
	if stats.CompletedKPIs != 1 || stats.InProgressKPIs != 1 || stats.OverdueKPIs != 1 {
		t.Errorf("status counts = %+v", stats)
	}
	// current 160 of target 300
	if stats.OverallCompletion != 53 {
		t.Errorf("overall completion = %v, want 53", stats.OverallCompletion)
	}
	if stats.OnTrackPercentage != 33 {
		t.Errorf("on track = %v, want 33", stats.OnTrackPercentage)
	}
	if stats.AtRiskPercentage != 67 {
		t.Errorf("at risk = %v, want 67", stats.AtRiskPercentage)
	}
}

func TestGetStatsRequiresKPIRead(t *testing.T) {
	svc := NewDashboardService(newFakeKPIRepo())

	ghost := rbac.Actor{ID: primitive.NewObjectID().Hex(), Role: "Ghost"}
	_, err := svc.GetStats(context.Background(), ghost)
	if !errors.Is(err, rbac.ErrUnknownRole) {
		t.Fatalf("got %v, want ErrUnknownRole", err)
	}
}
