// Package jobs runs periodic checks over the cost data.
package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rpggio/costtrack/internal/domain/activity"
	"github.com/rpggio/costtrack/internal/domain/inventory"
	"github.com/rpggio/costtrack/internal/domain/metrics"
	"github.com/shopspring/decimal"
)

// Watcher flags critical stock and projects heading over budget.
type Watcher struct {
	inventory *inventory.Service
	metrics   *metrics.Service
	activity  activity.Logger
	logger    *slog.Logger
}

// NewWatcher creates a watcher. activityLog may be nil.
func NewWatcher(inv *inventory.Service, metricsSvc *metrics.Service, activityLog activity.Logger, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{inventory: inv, metrics: metricsSvc, activity: activityLog, logger: logger}
}

// Findings is the outcome of one watcher pass.
type Findings struct {
	CriticalStock []inventory.Item        `json:"critical_stock"`
	Overruns      []metrics.ProjectHealth `json:"overruns"`
}

// RunOnce checks inventory and every project once, logging and recording an
// alert for each finding.
func (w *Watcher) RunOnce(ctx context.Context) (Findings, error) {
	var out Findings

	critical, err := w.inventory.Critical(ctx)
	if err != nil {
		return out, fmt.Errorf("checking inventory: %w", err)
	}
	for _, item := range critical {
		w.logger.Warn("critical stock", "item_id", item.ID, "name", item.Name, "quantity", item.Quantity, "min_stock", item.MinStock)
		activity.Record(ctx, w.activity, w.logger, &activity.ActivityEntry{
			EntityID:     item.ID,
			ActivityType: activity.TypeStockAlert,
			Summary:      fmt.Sprintf("%s kritik seviyede: %g %s (min %g)", item.Name, item.Quantity, item.Unit, item.MinStock),
		})
	}
	out.CriticalStock = critical

	portfolio, err := w.metrics.Portfolio(ctx)
	if err != nil {
		return out, fmt.Errorf("computing portfolio: %w", err)
	}
	for _, ph := range portfolio.Projects {
		if ph.Metrics.Health != metrics.HealthCritical {
			continue
		}
		w.logger.Warn("projected overrun", "project_id", ph.ProjectID, "name", ph.ProjectName, "cpi", ph.Metrics.CPI, "variance", ph.Metrics.Variance)
		activity.Record(ctx, w.activity, w.logger, &activity.ActivityEntry{
			ProjectID:    ph.ProjectID,
			EntityID:     ph.ProjectID,
			ActivityType: activity.TypeBudgetAlert,
			Summary:      fmt.Sprintf("%s bütçe aşımı öngörülüyor: varyans %s TL", ph.ProjectName, decimal.NewFromFloat(ph.Metrics.Variance).StringFixed(0)),
			Details:      activity.Details(map[string]float64{"cpi": ph.Metrics.CPI, "eac": ph.Metrics.EAC, "variance": ph.Metrics.Variance}),
		})
		out.Overruns = append(out.Overruns, ph)
	}

	w.logger.Info("watcher pass complete", "critical_stock", len(out.CriticalStock), "overruns", len(out.Overruns))
	return out, nil
}
