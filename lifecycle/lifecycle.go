// Package lifecycle owns the KPI status state machine and completion math.
// Every function here is deterministic: the current time is always injected,
// never read from the ambient clock.
package lifecycle

import (
	"errors"
	"time"

	"kpimanager/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNegativeValue rejects progress values below zero. The route layer
// validates first; this is the engine's own check on the same rule.
var ErrNegativeValue = errors.New("progress value must not be negative")

// DeriveStatus computes a KPI's status from its numbers and deadline.
//
// Rule order matters: reaching the target wins over a passed deadline, so a
// KPI finished late is Completed, not Overdue. Completion is terminal: a KPI
// that has reached its target stays Completed even if a later edit moves the
// goalposts, guarding against a recompute silently demoting a reported
// milestone. InProgress is entered only from NotStarted; afterwards the
// previous status carries through unchanged.
func DeriveStatus(currentValue, targetValue float64, deadline, now time.Time, prev models.KPIStatus) models.KPIStatus {
	switch {
	case prev == models.StatusCompleted:
		return models.StatusCompleted
	case currentValue >= targetValue:
		return models.StatusCompleted
	case now.After(deadline):
		return models.StatusOverdue
	case currentValue > 0 && prev == models.StatusNotStarted:
		return models.StatusInProgress
	default:
		return prev
	}
}

// CompletionPercentage is clamped to [0,100]. A zero target yields 0 rather
// than a division fault or a nonsense 100.
func CompletionPercentage(currentValue, targetValue float64) float64 {
	if targetValue == 0 {
		return 0
	}
	pct := currentValue / targetValue * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// KPICompletion is CompletionPercentage over a KPI document.
func KPICompletion(kpi *models.KPI) float64 {
	return CompletionPercentage(kpi.CurrentValue, kpi.TargetValue)
}

// IsOverdue answers with the injected clock rather than the stored status
// field, which is only as fresh as the last write.
func IsOverdue(kpi *models.KPI, now time.Time) bool {
	return now.After(kpi.Deadline) && kpi.Status != models.StatusCompleted
}

// RecordProgress appends one history entry, sets the new current value, and
// recomputes the status. The caller is responsible for authorization; this
// function only owns the KPI's state. History grows by exactly one entry per
// call and is never truncated.
func RecordProgress(kpi *models.KPI, value float64, comment string, actorID primitive.ObjectID, now time.Time) (*models.KPI, error) {
	if value < 0 {
		return nil, ErrNegativeValue
	}

	kpi.History = append(kpi.History, models.ProgressEntry{
		Value:     value,
		Comment:   comment,
		UpdatedBy: actorID,
		UpdatedAt: now,
	})
	kpi.CurrentValue = value
	kpi.Status = DeriveStatus(kpi.CurrentValue, kpi.TargetValue, kpi.Deadline, now, kpi.Status)
	kpi.UpdatedAt = now

	return kpi, nil
}

// Refresh recomputes the cached status after metadata changes that move the
// goalposts (target value or deadline edits).
func Refresh(kpi *models.KPI, now time.Time) {
	kpi.Status = DeriveStatus(kpi.CurrentValue, kpi.TargetValue, kpi.Deadline, now, kpi.Status)
}
