package mcp

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/costtrack/internal/domain/activity"
	"github.com/rpggio/costtrack/internal/domain/expense"
	"github.com/rpggio/costtrack/internal/domain/inventory"
	"github.com/rpggio/costtrack/internal/domain/labor"
	"github.com/rpggio/costtrack/internal/domain/project"
	"github.com/rpggio/costtrack/internal/export"
	"github.com/rpggio/costtrack/internal/timeutil"
)

var errServiceUnavailable = errors.New("service not configured")

// registerTools adds every costtrack tool to server.
func registerTools(server *sdkmcp.Server, svc Services, logger *slog.Logger) {
	registerProjectTools(server, svc)
	registerExpenseTools(server, svc)
	registerInventoryTools(server, svc)
	registerLaborTools(server, svc)
	registerAnalysisTools(server, svc, logger)
	registerExportTools(server, svc, logger)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_recent_activity",
		Description: "List audit log entries, newest first, optionally filtered by project, entity, type or time",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetRecentActivityParams) (*sdkmcp.CallToolResult, GetRecentActivityResponse, error) {
		var out GetRecentActivityResponse
		if svc.Activity == nil {
			return nil, out, errServiceUnavailable
		}
		since, err := timeutil.ParseOptionalDate(in.Since)
		if err != nil {
			return nil, out, toolError(err)
		}
		opts := activity.ListActivityOptions{
			ProjectID: in.ProjectID,
			EntityID:  in.EntityID,
			Since:     since,
			Limit:     in.Limit,
			Offset:    in.Offset,
		}
		if in.Type != "" {
			t := activity.ActivityType(in.Type)
			opts.ActivityType = &t
		}
		entries, err := svc.Activity.GetRecentActivity(ctx, opts)
		if err != nil {
			return nil, out, toolError(err)
		}
		out.Activity = nonNil(entries)
		return nil, out, nil
	})
}

func registerProjectTools(server *sdkmcp.Server, svc Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a solar (MW) or road (km) construction project with its budget and schedule",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateProjectParams) (*sdkmcp.CallToolResult, ProjectResponse, error) {
		var out ProjectResponse
		start, err := timeutil.ParseOptionalDate(in.StartDate)
		if err != nil {
			return nil, out, toolError(err)
		}
		end, err := timeutil.ParseOptionalDate(in.TargetEndDate)
		if err != nil {
			return nil, out, toolError(err)
		}
		req := project.CreateRequest{
			ID:              in.ID,
			Name:            in.Name,
			Category:        project.Category(strings.ToLower(in.Category)),
			Location:        in.Location,
			Status:          project.Status(strings.ToUpper(in.Status)),
			TotalBudget:     in.TotalBudget,
			Capacity:        in.Capacity,
			TargetEndDate:   end,
			PercentComplete: in.PercentComplete,
			TargetCO2Saved:  in.TargetCO2Saved,
		}
		if start != nil {
			req.StartDate = *start
		}
		p, err := svc.Projects.Create(ctx, req)
		if err != nil {
			return nil, out, toolError(err)
		}
		out.Project = *p
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects in creation order",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, ListProjectsResponse, error) {
		var out ListProjectsResponse
		projects, err := svc.Projects.List(ctx)
		if err != nil {
			return nil, out, toolError(err)
		}
		out.Projects = nonNil(projects)
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get a single project by id",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ProjectIDParams) (*sdkmcp.CallToolResult, ProjectResponse, error) {
		var out ProjectResponse
		p, err := svc.Projects.Get(ctx, in.ID)
		if err != nil {
			return nil, out, toolError(err)
		}
		out.Project = *p
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_project",
		Description: "Update physical progress, status or target end date of a project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateProjectParams) (*sdkmcp.CallToolResult, ProjectResponse, error) {
		var out ProjectResponse
		req := project.UpdateRequest{ID: in.ID, PercentComplete: in.PercentComplete}
		if in.Status != nil {
			status := project.Status(strings.ToUpper(*in.Status))
			req.Status = &status
		}
		if in.TargetEndDate != nil {
			end, err := timeutil.ParseDate(*in.TargetEndDate)
			if err != nil {
				return nil, out, toolError(err)
			}
			req.TargetEndDate = &end
		}
		p, err := svc.Projects.Update(ctx, req)
		if err != nil {
			return nil, out, toolError(err)
		}
		out.Project = *p
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project together with its expenses and labor records",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ProjectIDParams) (*sdkmcp.CallToolResult, DeleteResponse, error) {
		if err := svc.Projects.Delete(ctx, in.ID); err != nil {
			return nil, DeleteResponse{}, toolError(err)
		}
		return nil, DeleteResponse{ID: in.ID, Deleted: true}, nil
	})
}

func registerExpenseTools(server *sdkmcp.Server, svc Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_expense",
		Description: "Record a cost against a project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddExpenseParams) (*sdkmcp.CallToolResult, ExpenseResponse, error) {
		var out ExpenseResponse
		date, err := timeutil.ParseOptionalDate(in.Date)
		if err != nil {
			return nil, out, toolError(err)
		}
		e, err := svc.Expenses.Create(ctx, expense.CreateRequest{
			ProjectID:   in.ProjectID,
			Amount:      in.Amount,
			Quantity:    in.Quantity,
			Unit:        in.Unit,
			Category:    in.Category,
			Description: in.Description,
			Date:        date,
			Type:        expense.Type(strings.ToUpper(in.Type)),
		})
		if err != nil {
			return nil, out, toolError(err)
		}
		out.Expense = *e
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_expenses",
		Description: "List expenses, newest first, for one project or all projects",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListByProjectParams) (*sdkmcp.CallToolResult, ListExpensesResponse, error) {
		var out ListExpensesResponse
		expenses, err := svc.Expenses.List(ctx, in.ProjectID)
		if err != nil {
			return nil, out, toolError(err)
		}
		out.Expenses = nonNil(expenses)
		for _, e := range expenses {
			out.Total += e.Amount
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_expense",
		Description: "Delete an expense by id",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeleteParams) (*sdkmcp.CallToolResult, DeleteResponse, error) {
		if err := svc.Expenses.Delete(ctx, in.ID); err != nil {
			return nil, DeleteResponse{}, toolError(err)
		}
		return nil, DeleteResponse{ID: in.ID, Deleted: true}, nil
	})
}

func registerInventoryTools(server *sdkmcp.Server, svc Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_inventory_item",
		Description: "Add a stock item with its minimum level",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddInventoryItemParams) (*sdkmcp.CallToolResult, InventoryItemResponse, error) {
		var out InventoryItemResponse
		item, err := svc.Inventory.Create(ctx, inventory.CreateRequest{
			Name:     in.Name,
			Category: in.Category,
			Quantity: in.Quantity,
			Unit:     in.Unit,
			MinStock: in.MinStock,
		})
		if err != nil {
			return nil, out, toolError(err)
		}
		out.Item = item.View()
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_inventory",
		Description: "List stock items with their critical/sufficient status",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListInventoryParams) (*sdkmcp.CallToolResult, ListInventoryResponse, error) {
		var out ListInventoryResponse
		list := svc.Inventory.List
		if in.CriticalOnly {
			list = svc.Inventory.Critical
		}
		items, err := list(ctx)
		if err != nil {
			return nil, out, toolError(err)
		}
		out.Items = make([]inventory.ItemView, 0, len(items))
		for _, item := range items {
			out.Items = append(out.Items, item.View())
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "adjust_inventory",
		Description: "Set the on-hand quantity of a stock item",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in AdjustInventoryParams) (*sdkmcp.CallToolResult, InventoryItemResponse, error) {
		var out InventoryItemResponse
		item, err := svc.Inventory.SetQuantity(ctx, in.ID, in.Quantity)
		if err != nil {
			return nil, out, toolError(err)
		}
		out.Item = item.View()
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_inventory_item",
		Description: "Delete a stock item by id",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeleteParams) (*sdkmcp.CallToolResult, DeleteResponse, error) {
		if err := svc.Inventory.Delete(ctx, in.ID); err != nil {
			return nil, DeleteResponse{}, toolError(err)
		}
		return nil, DeleteResponse{ID: in.ID, Deleted: true}, nil
	})
}

func registerLaborTools(server *sdkmcp.Server, svc Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_labor_record",
		Description: "Record a worker's regular and overtime hours on a project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddLaborRecordParams) (*sdkmcp.CallToolResult, LaborRecordResponse, error) {
		var out LaborRecordResponse
		date, err := timeutil.ParseOptionalDate(in.Date)
		if err != nil {
			return nil, out, toolError(err)
		}
		r, err := svc.Labor.Create(ctx, labor.CreateRequest{
			ProjectID:  in.ProjectID,
			WorkerName: in.WorkerName,
			Role:       in.Role,
			Hours:      in.Hours,
			Overtime:   in.Overtime,
			Date:       date,
			DailyRate:  in.DailyRate,
		})
		if err != nil {
			return nil, out, toolError(err)
		}
		out.Record = *r
		out.Cost = r.Cost()
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_labor_records",
		Description: "List labor records, newest first, for one project or all projects",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListByProjectParams) (*sdkmcp.CallToolResult, ListLaborRecordsResponse, error) {
		var out ListLaborRecordsResponse
		records, err := svc.Labor.List(ctx, in.ProjectID)
		if err != nil {
			return nil, out, toolError(err)
		}
		out.Records = nonNil(records)
		for _, r := range records {
			out.TotalCost += r.Cost()
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_labor_record",
		Description: "Delete a labor record by id",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeleteParams) (*sdkmcp.CallToolResult, DeleteResponse, error) {
		if err := svc.Labor.Delete(ctx, in.ID); err != nil {
			return nil, DeleteResponse{}, toolError(err)
		}
		return nil, DeleteResponse{ID: in.ID, Deleted: true}, nil
	})
}

func registerAnalysisTools(server *sdkmcp.Server, svc Services, logger *slog.Logger) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project_metrics",
		Description: "Derive EVM, burn-rate and carbon metrics for a project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ProjectMetricsParams) (*sdkmcp.CallToolResult, MetricsResponse, error) {
		var out MetricsResponse
		m, err := svc.Metrics.ProjectMetrics(ctx, in.ProjectID)
		if err != nil {
			return nil, out, toolError(err)
		}
		out.Metrics = m
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_portfolio_summary",
		Description: "Aggregate budget, cost and health across every project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, PortfolioResponse, error) {
		var out PortfolioResponse
		p, err := svc.Metrics.Portfolio(ctx)
		if err != nil {
			return nil, out, toolError(err)
		}
		out.Portfolio = p
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_ai_insight",
		Description: "Ask the language model for a short Turkish cost analysis of a project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ProjectMetricsParams) (*sdkmcp.CallToolResult, InsightResponse, error) {
		var out InsightResponse
		if svc.Insight == nil {
			return nil, out, errServiceUnavailable
		}
		result, err := svc.Insight.Generate(ctx, in.ProjectID)
		if err != nil {
			return nil, out, toolError(err)
		}
		if result.Fallback && logger != nil {
			logger.Info("insight served from fallback", "project_id", in.ProjectID)
		}
		out.Insight = *result
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_budget_template",
		Description: "Reference budget lines for a solar or road project",
	}, func(_ context.Context, _ *sdkmcp.CallToolRequest, in BudgetTemplateParams) (*sdkmcp.CallToolResult, BudgetTemplateResponse, error) {
		category := project.Category(strings.ToLower(in.Category))
		items, err := project.BudgetTemplate(category)
		if err != nil {
			return nil, BudgetTemplateResponse{}, toolError(err)
		}
		return nil, BudgetTemplateResponse{
			Category:     string(category),
			Items:        items,
			PlannedTotal: project.PlannedTotal(items),
		}, nil
	})
}

func registerExportTools(server *sdkmcp.Server, svc Services, logger *slog.Logger) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_expenses",
		Description: "Write the expense list to a csv or xlsx file in the export directory",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ExportExpensesParams) (*sdkmcp.CallToolResult, ExportResponse, error) {
		var out ExportResponse
		if svc.Export == nil {
			return nil, out, errServiceUnavailable
		}
		raw := in.Format
		if raw == "" {
			raw = string(export.FormatCSV)
		}
		format, err := export.ParseFormat(raw)
		if err == nil && format == export.FormatPDF {
			err = export.ErrUnsupportedFormat
		}
		if err != nil {
			return nil, out, toolError(err)
		}
		path, err := svc.Export.SaveExpenses(ctx, format, in.ProjectID)
		if err != nil {
			return nil, out, toolError(err)
		}
		return nil, ExportResponse{Path: path, Format: string(format), GeneratedAt: time.Now().UTC()}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_project_report",
		Description: "Write a PDF cost report for a project, optionally with an AI narrative",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ExportProjectReportParams) (*sdkmcp.CallToolResult, ExportResponse, error) {
		var out ExportResponse
		if svc.Export == nil {
			return nil, out, errServiceUnavailable
		}
		var narrative string
		if in.IncludeInsight && svc.Insight != nil {
			result, err := svc.Insight.Generate(ctx, in.ProjectID)
			if err != nil {
				return nil, out, toolError(err)
			}
			narrative = result.Text
		}
		path, err := svc.Export.SaveProjectReport(ctx, in.ProjectID, narrative)
		if err != nil {
			return nil, out, toolError(err)
		}
		if logger != nil {
			logger.Info("project report exported", "project_id", in.ProjectID, "path", path)
		}
		return nil, ExportResponse{Path: path, Format: string(export.FormatPDF), GeneratedAt: time.Now().UTC()}, nil
	})
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
