package services

import (
	"context"
	"math"

	"kpimanager/models"
	"kpimanager/rbac"
	repository "kpimanager/repositories"

	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	GetStats(ctx context.Context, actor rbac.Actor) (*models.DashboardStats, error)
}

type dashboardService struct {
	kpis repository.KPIRepository
}

func NewDashboardService(kpis repository.KPIRepository) DashboardService {
	return &dashboardService{kpis: kpis}
}

// GetStats runs the per-status counts and the value totals concurrently;
// the dashboard is the hottest read path in the application.
func (s *dashboardService) GetStats(ctx context.Context, actor rbac.Actor) (*models.DashboardStats, error) {
	if err := rbac.Authorize(actor, rbac.PermKPIRead); err != nil {
		return nil, err
	}

	var (
		total, completed, inProgress, overdue, notStarted int64
		currentTotal, targetTotal                         float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.kpis.CountActive(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		completed, err = s.kpis.CountByStatus(gctx, models.StatusCompleted)
		return err
	})
	g.Go(func() error {
		var err error
		inProgress, err = s.kpis.CountByStatus(gctx, models.StatusInProgress)
		return err
	})
	g.Go(func() error {
		var err error
		overdue, err = s.kpis.CountByStatus(gctx, models.StatusOverdue)
		return err
	})
	g.Go(func() error {
		var err error
		notStarted, err = s.kpis.CountByStatus(gctx, models.StatusNotStarted)
		return err
	})
	g.Go(func() error {
		var err error
		currentTotal, targetTotal, err = s.kpis.ValueTotals(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &models.DashboardStats{
		TotalKPIs:      total,
		CompletedKPIs:  completed,
		InProgressKPIs: inProgress,
		OverdueKPIs:    overdue,
		NotStartedKPIs: notStarted,
	}

	if targetTotal > 0 {
		stats.OverallCompletion = math.Round(currentTotal / targetTotal * 100)
	}

	// Rough split inherited from the dashboard's original heuristic: 70% of
	// in-progress KPIs count as on track, the rest as at risk.
	if total > 0 {
		onTrack := completed + int64(math.Floor(float64(inProgress)*0.7))
		atRisk := overdue + int64(math.Ceil(float64(inProgress)*0.3))
		stats.OnTrackPercentage = math.Round(float64(onTrack) / float64(total) * 100)
		stats.AtRiskPercentage = math.Round(float64(atRisk) / float64(total) * 100)
	}

	return stats, nil
}
