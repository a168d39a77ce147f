package lifecycle_test

import (
	"errors"
	"testing"
	"time"

	"kpimanager/lifecycle"
	"kpimanager/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newKPI(current, target float64, deadline time.Time, status models.KPIStatus) *models.KPI {
	return &models.KPI{
		ID:           primitive.NewObjectID(),
		Title:        "Quarterly Revenue",
		TargetValue:  target,
		CurrentValue: current,
		Unit:         "USD",
		Deadline:     deadline,
		Status:       status,
		IsActive:     true,
		History:      []models.ProgressEntry{},
	}
}

func TestDeriveStatus(t *testing.T) {
	future := now.Add(30 * 24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name     string
		current  float64
		target   float64
		deadline time.Time
		prev     models.KPIStatus
		want     models.KPIStatus
	}{
		{"not started stays put", 0, 100, future, models.StatusNotStarted, models.StatusNotStarted},
		{"first progress starts", 10, 100, future, models.StatusNotStarted, models.StatusInProgress},
		{"in progress carries", 50, 100, future, models.StatusInProgress, models.StatusInProgress},
		{"target reached", 100, 100, future, models.StatusInProgress, models.StatusCompleted},
		{"target exceeded", 150, 100, future, models.StatusInProgress, models.StatusCompleted},
		{"deadline passed", 50, 100, past, models.StatusInProgress, models.StatusOverdue},
		{"untouched past deadline", 0, 100, past, models.StatusNotStarted, models.StatusOverdue},
		{"completed late wins over overdue", 100, 100, past, models.StatusInProgress, models.StatusCompleted},
		{"completed is terminal", 80, 100, future, models.StatusCompleted, models.StatusCompleted},
		{"completed survives goalpost move", 80, 200, future, models.StatusCompleted, models.StatusCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lifecycle.DeriveStatus(tt.current, tt.target, tt.deadline, now, tt.prev)
			if got != tt.want {
				t.Fatalf("DeriveStatus(%v, %v, prev=%s) = %s, want %s",
					tt.current, tt.target, tt.prev, got, tt.want)
			}
		})
	}
}

func TestDeriveStatusDeadlineBoundary(t *testing.T) {
	deadline := now
	// exactly at the deadline is not overdue yet
	if got := lifecycle.DeriveStatus(50, 100, deadline, now, models.StatusInProgress); got != models.StatusInProgress {
		t.Fatalf("at deadline: got %s, want In Progress", got)
	}
	if got := lifecycle.DeriveStatus(50, 100, deadline, now.Add(time.Second), models.StatusInProgress); got != models.StatusOverdue {
		t.Fatalf("past deadline: got %s, want Overdue", got)
	}
}

func TestCompletionPercentage(t *testing.T) {
	tests := []struct {
		current, target, want float64
	}{
		{0, 100, 0},
		{25, 100, 25},
		{100, 100, 100},
		{150, 100, 100}, // clamped
		{1, 3, 100.0 / 3},
		{50, 0, 0}, // zero target never divides
	}
	for _, tt := range tests {
		if got := lifecycle.CompletionPercentage(tt.current, tt.target); got != tt.want {
			t.Errorf("CompletionPercentage(%v, %v) = %v, want %v", tt.current, tt.target, got, tt.want)
		}
	}
}

func TestIsOverdue(t *testing.T) {
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	if !lifecycle.IsOverdue(newKPI(50, 100, past, models.StatusInProgress), now) {
		t.Error("past deadline, not completed: want overdue")
	}
	if lifecycle.IsOverdue(newKPI(100, 100, past, models.StatusCompleted), now) {
		t.Error("completed KPI is never overdue")
	}
	if lifecycle.IsOverdue(newKPI(50, 100, future, models.StatusInProgress), now) {
		t.Error("future deadline: want not overdue")
	}
}

func TestRecordProgress(t *testing.T) {
	actor := primitive.NewObjectID()
	kpi := newKPI(0, 100, now.Add(time.Hour), models.StatusNotStarted)

	updated, err := lifecycle.RecordProgress(kpi, 40, "first batch", actor, now)
	if err != nil {
		t.Fatalf("RecordProgress: %v", err)
	}
	if updated.CurrentValue != 40 {
		t.Fatalf("current value = %v, want 40", updated.CurrentValue)
	}
	if updated.Status != models.StatusInProgress {
		t.Fatalf("status = %s, want In Progress", updated.Status)
	}
	if len(updated.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(updated.History))
	}
	entry := updated.History[0]
	if entry.Value != 40 || entry.Comment != "first batch" || entry.UpdatedBy != actor || !entry.UpdatedAt.Equal(now) {
		t.Fatalf("history entry = %+v", entry)
	}

	// second update appends, never rewrites
	if _, err := lifecycle.RecordProgress(kpi, 100, "", actor, now.Add(time.Minute)); err != nil {
		t.Fatalf("RecordProgress: %v", err)
	}
	if len(kpi.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(kpi.History))
	}
	if kpi.History[0].Value != 40 {
		t.Fatalf("earlier entry rewritten: %+v", kpi.History[0])
	}
	if kpi.Status != models.StatusCompleted {
		t.Fatalf("status = %s, want Completed", kpi.Status)
	}
}

func TestRecordProgressNegativeValue(t *testing.T) {
	kpi := newKPI(40, 100, now.Add(time.Hour), models.StatusInProgress)
	kpi.History = append(kpi.History, models.ProgressEntry{Value: 40, UpdatedAt: now})

	_, err := lifecycle.RecordProgress(kpi, -5, "", primitive.NewObjectID(), now)
	if !errors.Is(err, lifecycle.ErrNegativeValue) {
		t.Fatalf("got %v, want ErrNegativeValue", err)
	}
	// rejected update must leave the KPI untouched
	if kpi.CurrentValue != 40 {
		t.Fatalf("current value changed to %v", kpi.CurrentValue)
	}
	if len(kpi.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(kpi.History))
	}
	if kpi.Status != models.StatusInProgress {
		t.Fatalf("status changed to %s", kpi.Status)
	}
}

func TestRefreshAfterGoalpostMove(t *testing.T) {
	kpi := newKPI(80, 100, now.Add(time.Hour), models.StatusInProgress)

	// lowering the target below current completes the KPI
	kpi.TargetValue = 75
	lifecycle.Refresh(kpi, now)
	if kpi.Status != models.StatusCompleted {
		t.Fatalf("status = %s, want Completed", kpi.Status)
	}

	// raising it back does not demote a completed KPI
	kpi.TargetValue = 200
	lifecycle.Refresh(kpi, now)
	if kpi.Status != models.StatusCompleted {
		t.Fatalf("status = %s, want Completed to stick", kpi.Status)
	}
}

func TestRefreshDeadlineEdit(t *testing.T) {
	kpi := newKPI(30, 100, now.Add(-time.Hour), models.StatusOverdue)

	// extending the deadline alone does not clear Overdue, the status
	// only moves forward through progress or completion
	kpi.Deadline = now.Add(24 * time.Hour)
	lifecycle.Refresh(kpi, now)
	if kpi.Status != models.StatusOverdue {
		t.Fatalf("status = %s, want Overdue to carry", kpi.Status)
	}
}
