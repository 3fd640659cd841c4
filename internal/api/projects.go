package api

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rpggio/costtrack/internal/domain/project"
	"github.com/rpggio/costtrack/internal/export"
	"github.com/rpggio/costtrack/internal/timeutil"
)

type createProjectRequest struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Location        string   `json:"location"`
	Status          string   `json:"status"`
	TotalBudget     float64  `json:"total_budget"`
	Capacity        float64  `json:"capacity"`
	StartDate       string   `json:"start_date"`
	TargetEndDate   string   `json:"target_end_date"`
	PercentComplete float64  `json:"percent_complete"`
	TargetCO2Saved  *float64 `json:"target_co2_saved"`
}

type updateProjectRequest struct {
	PercentComplete *float64 `json:"percent_complete"`
	Status          *string  `json:"status"`
	TargetEndDate   *string  `json:"target_end_date"`
}

func (h *handler) listProjects(c *gin.Context) {
	projects, err := h.svc.Projects.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(projects))
}

func (h *handler) createProject(c *gin.Context) {
	var body createProjectRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	start, err := timeutil.ParseOptionalDate(body.StartDate)
	if err != nil {
		h.fail(c, err)
		return
	}
	end, err := timeutil.ParseOptionalDate(body.TargetEndDate)
	if err != nil {
		h.fail(c, err)
		return
	}
	req := project.CreateRequest{
		ID:              body.ID,
		Name:            body.Name,
		Category:        project.Category(strings.ToLower(body.Category)),
		Location:        body.Location,
		Status:          project.Status(strings.ToUpper(body.Status)),
		TotalBudget:     body.TotalBudget,
		Capacity:        body.Capacity,
		TargetEndDate:   end,
		PercentComplete: body.PercentComplete,
		TargetCO2Saved:  body.TargetCO2Saved,
	}
	if start != nil {
		req.StartDate = *start
	}
	p, err := h.svc.Projects.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *handler) getProject(c *gin.Context) {
	p, err := h.svc.Projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handler) updateProject(c *gin.Context) {
	var body updateProjectRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	req := project.UpdateRequest{ID: c.Param("id"), PercentComplete: body.PercentComplete}
	if body.Status != nil {
		status := project.Status(strings.ToUpper(*body.Status))
		req.Status = &status
	}
	if body.TargetEndDate != nil {
		end, err := timeutil.ParseDate(*body.TargetEndDate)
		if err != nil {
			h.fail(c, err)
			return
		}
		req.TargetEndDate = &end
	}
	p, err := h.svc.Projects.Update(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handler) deleteProject(c *gin.Context) {
	if err := h.svc.Projects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) projectMetrics(c *gin.Context) {
	m, err := h.svc.Metrics.ProjectMetrics(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *handler) projectInsight(c *gin.Context) {
	if h.svc.Insight == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "insight service not configured"})
		return
	}
	result, err := h.svc.Insight.Generate(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// projectReport streams the PDF report. ?insight=true adds the AI narrative.
func (h *handler) projectReport(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	if _, err := h.svc.Projects.Get(ctx, id); err != nil {
		h.fail(c, err)
		return
	}
	var narrative string
	if c.Query("insight") == "true" && h.svc.Insight != nil {
		result, err := h.svc.Insight.Generate(ctx, id)
		if err != nil {
			h.fail(c, err)
			return
		}
		narrative = result.Text
	}
	var buf bytes.Buffer
	if err := h.svc.Export.WriteProjectReport(ctx, &buf, id, narrative); err != nil {
		h.fail(c, err)
		return
	}
	h.download(c, export.FormatPDF, buf.Bytes())
}

func (h *handler) download(c *gin.Context, f export.Format, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+export.FileName(f, h.now())+`"`)
	c.Data(http.StatusOK, f.ContentType(), data)
}

func (h *handler) portfolio(c *gin.Context) {
	p, err := h.svc.Metrics.Portfolio(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handler) budgetTemplate(c *gin.Context) {
	category := project.Category(strings.ToLower(c.Param("category")))
	items, err := project.BudgetTemplate(category)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown category " + c.Param("category")})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"category":      category,
		"items":         items,
		"planned_total": project.PlannedTotal(items),
	})
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
