// Package metrics derives earned-value indicators from a project and its
// cost records. Compute never fails: degenerate inputs are replaced by fixed
// fallback values so that a dashboard always has a number to show.
package metrics

import (
	"math"
	"time"

	"github.com/rpggio/costtrack/internal/domain/expense"
	"github.com/rpggio/costtrack/internal/domain/labor"
	"github.com/rpggio/costtrack/internal/domain/project"
	"github.com/rpggio/costtrack/internal/timeutil"
)

// CarbonFactor is tonnes of CO2 avoided per MW of completed solar capacity.
const CarbonFactor = 450.0

// Health summarises the sign of the cost variance.
type Health string

const (
	HealthStable   Health = "stable"
	HealthCritical Health = "critical"
)

// Metrics are the indicators derived for one project.
type Metrics struct {
	ProjectID       string  `json:"project_id"`
	PercentComplete float64 `json:"percent_complete"`

	ExpenseCost float64 `json:"expense_cost"`
	LaborCost   float64 `json:"labor_cost"`
	ActualCost  float64 `json:"actual_cost"`

	PlannedValue float64 `json:"planned_value"`
	EarnedValue  float64 `json:"earned_value"`
	CPI          float64 `json:"cpi"`
	EAC          float64 `json:"eac"`
	Variance     float64 `json:"variance"`
	UnitCost     float64 `json:"unit_cost"`
	UnitLabel    string  `json:"unit_label"`

	DaysPassed           float64 `json:"days_passed"`
	RemainingDays        float64 `json:"remaining_days"`
	BurnRate             float64 `json:"burn_rate"`
	ForecastAtCompletion float64 `json:"forecast_at_completion"`
	BudgetDeviation      float64 `json:"budget_deviation"`

	CarbonSaved float64 `json:"carbon_saved"`
	Health      Health  `json:"health"`

	CategoryTotals map[string]float64       `json:"category_totals"`
	TypeTotals     map[expense.Type]float64 `json:"type_totals"`
}

// Compute derives the metrics of p at time now. Expenses and labor records
// belonging to other projects are ignored.
func Compute(p project.Project, expenses []expense.Expense, laborRecords []labor.Record, now time.Time) Metrics {
	m := Metrics{
		ProjectID:       p.ID,
		PercentComplete: p.PercentComplete,
		UnitLabel:       p.UnitLabel(),
		CategoryTotals:  map[string]float64{},
		TypeTotals:      map[expense.Type]float64{},
	}

	for _, e := range expenses {
		if e.ProjectID != p.ID {
			continue
		}
		m.ExpenseCost += e.Amount
		m.CategoryTotals[e.Category] += e.Amount
		m.TypeTotals[e.Type] += e.Amount
	}
	for _, r := range laborRecords {
		if r.ProjectID != p.ID {
			continue
		}
		m.LaborCost += r.Cost()
	}
	m.ActualCost = m.ExpenseCost + m.LaborCost

	progress := p.PercentComplete / 100
	m.PlannedValue = p.TotalBudget
	m.EarnedValue = p.TotalBudget * progress

	m.CPI = 1
	if m.ActualCost > 0 {
		m.CPI = m.EarnedValue / m.ActualCost
	}
	m.EAC = p.TotalBudget
	if m.CPI > 0 {
		m.EAC = p.TotalBudget / m.CPI
	}
	m.Variance = p.TotalBudget - m.EAC
	m.UnitCost = unitCost(m.ActualCost, p.Capacity, progress)

	m.DaysPassed = math.Max(1, timeutil.DaysSince(p.StartDate, now))
	if p.TargetEndDate != nil {
		m.RemainingDays = math.Max(0, timeutil.DaysUntil(*p.TargetEndDate, now))
	}
	m.BurnRate = m.ActualCost / m.DaysPassed
	m.ForecastAtCompletion = m.ActualCost + m.BurnRate*m.RemainingDays
	m.BudgetDeviation = p.TotalBudget - m.ForecastAtCompletion

	if p.Category == project.CategorySolar {
		m.CarbonSaved = p.Capacity * progress * CarbonFactor
	}

	m.Health = HealthStable
	if m.Variance < 0 {
		m.Health = HealthCritical
	}
	return m
}

// unitCost is cost per delivered unit of capacity. Zero progress counts as a
// full unit so the denominator never vanishes; zero capacity likewise.
func unitCost(actual, capacity, progress float64) float64 {
	if progress == 0 {
		progress = 1
	}
	denominator := capacity * progress
	if denominator == 0 {
		denominator = 1
	}
	return actual / denominator
}

// LaborCost sums the wage cost of records.
func LaborCost(records []labor.Record) float64 {
	var total float64
	for _, r := range records {
		total += r.Cost()
	}
	return total
}
