package mcp

import (
	"time"

	"github.com/rpggio/costtrack/internal/domain/activity"
	"github.com/rpggio/costtrack/internal/domain/expense"
	"github.com/rpggio/costtrack/internal/domain/insight"
	"github.com/rpggio/costtrack/internal/domain/inventory"
	"github.com/rpggio/costtrack/internal/domain/labor"
	"github.com/rpggio/costtrack/internal/domain/metrics"
	"github.com/rpggio/costtrack/internal/domain/project"
)

type CreateProjectParams struct {
	ID              string   `json:"id,omitempty" jsonschema:"project id, generated when omitted"`
	Name            string   `json:"name" jsonschema:"project display name"`
	Category        string   `json:"category" jsonschema:"solar or road"`
	Location        string   `json:"location,omitempty"`
	Status          string   `json:"status,omitempty" jsonschema:"ACTIVE, COMPLETED or PLANNING (default ACTIVE)"`
	TotalBudget     float64  `json:"total_budget" jsonschema:"approved budget in TRY"`
	Capacity        float64  `json:"capacity" jsonschema:"MW for solar, km for road"`
	StartDate       string   `json:"start_date,omitempty" jsonschema:"YYYY-MM-DD or RFC3339, defaults to today"`
	TargetEndDate   string   `json:"target_end_date,omitempty" jsonschema:"YYYY-MM-DD or RFC3339"`
	PercentComplete float64  `json:"percent_complete,omitempty" jsonschema:"physical progress 0-100"`
	TargetCO2Saved  *float64 `json:"target_co2_saved,omitempty"`
}

type ProjectIDParams struct {
	ID string `json:"id" jsonschema:"project id"`
}

type UpdateProjectParams struct {
	ID              string   `json:"id"`
	PercentComplete *float64 `json:"percent_complete,omitempty" jsonschema:"physical progress 0-100"`
	Status          *string  `json:"status,omitempty" jsonschema:"ACTIVE, COMPLETED or PLANNING"`
	TargetEndDate   *string  `json:"target_end_date,omitempty" jsonschema:"YYYY-MM-DD or RFC3339"`
}

type AddExpenseParams struct {
	ProjectID   string   `json:"project_id"`
	Amount      float64  `json:"amount" jsonschema:"positive amount in TRY"`
	Quantity    *float64 `json:"quantity,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	Category    string   `json:"category" jsonschema:"budget category, e.g. Mekanik"`
	Description string   `json:"description"`
	Date        string   `json:"date,omitempty" jsonschema:"YYYY-MM-DD, defaults to today"`
	Type        string   `json:"type,omitempty" jsonschema:"MATERIAL, LABOR, MACHINE, FUEL or OTHER"`
}

type ListByProjectParams struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"restrict to one project"`
}

type DeleteParams struct {
	ID string `json:"id"`
}

type AddInventoryItemParams struct {
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
	MinStock float64 `json:"min_stock"`
}

type ListInventoryParams struct {
	CriticalOnly bool `json:"critical_only,omitempty"`
}

type AdjustInventoryParams struct {
	ID       string  `json:"id"`
	Quantity float64 `json:"quantity" jsonschema:"new absolute quantity"`
}

type AddLaborRecordParams struct {
	ProjectID  string  `json:"project_id"`
	WorkerName string  `json:"worker_name"`
	Role       string  `json:"role,omitempty"`
	Hours      float64 `json:"hours"`
	Overtime   float64 `json:"overtime,omitempty"`
	Date       string  `json:"date,omitempty" jsonschema:"YYYY-MM-DD, defaults to today"`
	DailyRate  float64 `json:"daily_rate" jsonschema:"pay for an 8 hour day"`
}

type ProjectMetricsParams struct {
	ProjectID string `json:"project_id"`
}

type BudgetTemplateParams struct {
	Category string `json:"category" jsonschema:"solar or road"`
}

type ExportExpensesParams struct {
	ProjectID string `json:"project_id,omitempty"`
	Format    string `json:"format,omitempty" jsonschema:"csv or xlsx (default csv)"`
}

type ExportProjectReportParams struct {
	ProjectID      string `json:"project_id"`
	IncludeInsight bool   `json:"include_insight,omitempty" jsonschema:"generate an AI narrative for the report"`
}

type GetRecentActivityParams struct {
	ProjectID string `json:"project_id,omitempty"`
	EntityID  string `json:"entity_id,omitempty"`
	Type      string `json:"type,omitempty"`
	Since     string `json:"since,omitempty" jsonschema:"RFC3339 or YYYY-MM-DD"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}

type ProjectResponse struct {
	Project project.Project `json:"project"`
}

type ListProjectsResponse struct {
	Projects []project.Project `json:"projects"`
}

type ExpenseResponse struct {
	Expense expense.Expense `json:"expense"`
}

type ListExpensesResponse struct {
	Expenses []expense.Expense `json:"expenses"`
	Total    float64           `json:"total"`
}

type InventoryItemResponse struct {
	Item inventory.ItemView `json:"item"`
}

type ListInventoryResponse struct {
	Items []inventory.ItemView `json:"items"`
}

type LaborRecordResponse struct {
	Record labor.Record `json:"record"`
	Cost   float64      `json:"cost"`
}

type ListLaborRecordsResponse struct {
	Records   []labor.Record `json:"records"`
	TotalCost float64        `json:"total_cost"`
}

type DeleteResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type MetricsResponse struct {
	Metrics metrics.Metrics `json:"metrics"`
}

type PortfolioResponse struct {
	Portfolio metrics.Portfolio `json:"portfolio"`
}

type InsightResponse struct {
	Insight insight.Insight `json:"insight"`
}

type BudgetTemplateResponse struct {
	Category     string               `json:"category"`
	Items        []project.BudgetItem `json:"items"`
	PlannedTotal float64              `json:"planned_total"`
}

type ExportResponse struct {
	Path        string    `json:"path"`
	Format      string    `json:"format"`
	GeneratedAt time.Time `json:"generated_at"`
}

type GetRecentActivityResponse struct {
	Activity []activity.ActivityEntry `json:"activity"`
}
