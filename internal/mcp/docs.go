package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `costtrack tracks construction projects (solar plants and roads) against their budgets.

Core concepts:
- Project: budget, capacity (MW or km), start and target end dates, physical progress 0-100.
- Expense: a cost line charged to a project (material, labor, machine, fuel, other).
- Labor record: a worker's hours on a day; cost = daily_rate * hours/8 + daily_rate/8 * 1.5 * overtime.
- Inventory item: site stock with a minimum level; at or below the minimum it is critical.
- Metrics are always derived on read. Nothing stores CPI or EAC.

Default workflow:
1) Orient: list_projects, then get_portfolio_summary for the health of every project.
2) Drill in: get_project_metrics(project_id) for EVM figures, list_expenses / list_labor_records for detail.
3) Record: add_expense, add_labor_record, update_project (progress), adjust_inventory.
4) Explain: get_ai_insight(project_id) for a short Turkish cost analysis.
5) Share: export_expenses (csv/xlsx) or export_project_report (pdf).

Docs:
- costtrack://docs/index
- costtrack://docs/metrics
- costtrack://docs/glossary
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "costtrack://docs/index",
		Name:        "docs_index",
		Title:       "costtrack docs index",
		Description: "Entry point: which tools exist and what to read next.",
		Content: `# costtrack: Agent Docs Index

## Tools by task

- Projects: ` + "`create_project`, `list_projects`, `get_project`, `update_project`, `delete_project`" + `
- Costs: ` + "`add_expense`, `list_expenses`, `delete_expense`" + `
- Labor: ` + "`add_labor_record`, `list_labor_records`, `delete_labor_record`" + `
- Stock: ` + "`add_inventory_item`, `list_inventory`, `adjust_inventory`, `delete_inventory_item`" + `
- Analysis: ` + "`get_project_metrics`, `get_portfolio_summary`, `get_ai_insight`, `get_budget_template`" + `
- Output: ` + "`export_expenses`, `export_project_report`" + `
- Audit: ` + "`get_recent_activity`" + `

## Notes

- Deleting a project also deletes its expenses and labor records.
- Amounts are Turkish lira. Dates are YYYY-MM-DD.
- ` + "`get_ai_insight`" + ` never fails for a known project; when the model is unavailable it returns a fixed fallback text with ` + "`fallback: true`" + `.

## Docs

- ` + "`costtrack://docs/metrics`" + `: every derived figure and its formula.
- ` + "`costtrack://docs/glossary`" + `: EVM and site vocabulary.
`,
	},
	{
		URI:         "costtrack://docs/metrics",
		Name:        "docs_metrics",
		Title:       "Metric formulas",
		Description: "How each project metric is derived from budget, progress, expenses and labor.",
		Content: `# Metric formulas

Inputs: budget B, progress P (0-100), capacity C, expenses, labor records, now.

## Earned value

- AC (actual cost) = sum(expense amounts) + sum(labor costs)
- PV (planned value) = B
- EV (earned value) = B * P/100
- CPI = EV / AC, or 1 when AC is 0
- EAC = B / CPI, or B when CPI is 0
- Variance = B - EAC
- Unit cost = AC / (C * P/100); progress 0 and capacity 0 count as 1
- Health = critical when Variance < 0, otherwise stable

## Burn rate

- Days passed = max(1, floor(days since start))
- Remaining days = max(0, ceil(days until target end)), 0 without a target end
- Burn rate = AC / days passed
- Forecast at completion = AC + burn rate * remaining days
- Budget deviation = B - forecast

## Carbon

Solar projects only: carbon saved = C * P/100 * 450 tonnes CO2 per MW.

## Portfolio

Totals of budget, AC and EAC; averages of progress and CPI; count of critical projects.
`,
	},
	{
		URI:         "costtrack://docs/glossary",
		Name:        "docs_glossary",
		Title:       "Glossary",
		Description: "EVM and construction vocabulary used across the tools.",
		Content: `# Glossary

- EVM: earned value management.
- CPI: cost performance index. Above 1 means under budget for the work done.
- EAC: estimate at completion, the projected final cost at the current CPI.
- GES: solar power plant (Güneş Enerji Santrali). Capacity in MW.
- YOL: road project. Capacity in km.
- Mesai: overtime, paid at 1.5x the hourly rate.
- Kritik stok: an inventory item at or below its minimum level.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
