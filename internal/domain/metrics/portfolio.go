package metrics

import (
	"time"

	"github.com/rpggio/costtrack/internal/domain/expense"
	"github.com/rpggio/costtrack/internal/domain/labor"
	"github.com/rpggio/costtrack/internal/domain/project"
)

// ProjectHealth is one row of the portfolio view.
type ProjectHealth struct {
	ProjectID   string  `json:"project_id"`
	ProjectName string  `json:"project_name"`
	Category    string  `json:"category"`
	Metrics     Metrics `json:"metrics"`
}

// Portfolio aggregates the metrics of every project.
type Portfolio struct {
	ProjectCount           int             `json:"project_count"`
	TotalBudget            float64         `json:"total_budget"`
	TotalActualCost        float64         `json:"total_actual_cost"`
	TotalEAC               float64         `json:"total_eac"`
	AveragePercentComplete float64         `json:"average_percent_complete"`
	AverageCPI             float64         `json:"average_cpi"`
	CriticalProjects       int             `json:"critical_projects"`
	Projects               []ProjectHealth `json:"projects"`
}

// ComputePortfolio derives per-project metrics and their aggregates.
// Averages are 0 for an empty portfolio.
func ComputePortfolio(projects []project.Project, expenses []expense.Expense, laborRecords []labor.Record, now time.Time) Portfolio {
	byProjectExp := make(map[string][]expense.Expense, len(projects))
	for _, e := range expenses {
		byProjectExp[e.ProjectID] = append(byProjectExp[e.ProjectID], e)
	}
	byProjectLab := make(map[string][]labor.Record, len(projects))
	for _, r := range laborRecords {
		byProjectLab[r.ProjectID] = append(byProjectLab[r.ProjectID], r)
	}

	out := Portfolio{
		ProjectCount: len(projects),
		Projects:     make([]ProjectHealth, 0, len(projects)),
	}
	var pctSum, cpiSum float64
	for _, p := range projects {
		m := Compute(p, byProjectExp[p.ID], byProjectLab[p.ID], now)
		out.TotalBudget += p.TotalBudget
		out.TotalActualCost += m.ActualCost
		out.TotalEAC += m.EAC
		pctSum += p.PercentComplete
		cpiSum += m.CPI
		if m.Health == HealthCritical {
			out.CriticalProjects++
		}
		out.Projects = append(out.Projects, ProjectHealth{
			ProjectID:   p.ID,
			ProjectName: p.Name,
			Category:    string(p.Category),
			Metrics:     m,
		})
	}
	if len(projects) > 0 {
		out.AveragePercentComplete = pctSum / float64(len(projects))
		out.AverageCPI = cpiSum / float64(len(projects))
	}
	return out
}
