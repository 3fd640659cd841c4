package api

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rpggio/costtrack/internal/domain/activity"
	"github.com/rpggio/costtrack/internal/domain/expense"
	"github.com/rpggio/costtrack/internal/domain/inventory"
	"github.com/rpggio/costtrack/internal/domain/labor"
	"github.com/rpggio/costtrack/internal/export"
	"github.com/rpggio/costtrack/internal/timeutil"
)

type createExpenseRequest struct {
	ProjectID   string   `json:"project_id"`
	Amount      float64  `json:"amount"`
	Quantity    *float64 `json:"quantity"`
	Unit        string   `json:"unit"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Type        string   `json:"type"`
}

type createLaborRequest struct {
	ProjectID  string  `json:"project_id"`
	WorkerName string  `json:"worker_name"`
	Role       string  `json:"role"`
	Hours      float64 `json:"hours"`
	Overtime   float64 `json:"overtime"`
	Date       string  `json:"date"`
	DailyRate  float64 `json:"daily_rate"`
}

type createInventoryRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	MinStock float64 `json:"min_stock"`
}

type adjustInventoryRequest struct {
	Quantity *float64 `json:"quantity" binding:"required"`
}

type laborView struct {
	labor.Record
	Cost float64 `json:"cost"`
}

func (h *handler) listExpenses(c *gin.Context) {
	expenses, err := h.svc.Expenses.List(c.Request.Context(), c.Query("project_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(expenses))
}

func (h *handler) createExpense(c *gin.Context) {
	var body createExpenseRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	date, err := timeutil.ParseOptionalDate(body.Date)
	if err != nil {
		h.fail(c, err)
		return
	}
	e, err := h.svc.Expenses.Create(c.Request.Context(), expense.CreateRequest{
		ProjectID:   body.ProjectID,
		Amount:      body.Amount,
		Quantity:    body.Quantity,
		Unit:        body.Unit,
		Category:    body.Category,
		Description: body.Description,
		Date:        date,
		Type:        expense.Type(strings.ToUpper(body.Type)),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *handler) deleteExpense(c *gin.Context) {
	if err := h.svc.Expenses.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// exportExpenses downloads the expense list as csv (default) or xlsx.
func (h *handler) exportExpenses(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err == nil && format == export.FormatPDF {
		err = export.ErrUnsupportedFormat
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	var buf bytes.Buffer
	if err := h.svc.Export.WriteExpenses(c.Request.Context(), &buf, format, c.Query("project_id")); err != nil {
		h.fail(c, err)
		return
	}
	h.download(c, format, buf.Bytes())
}

func (h *handler) listLabor(c *gin.Context) {
	records, err := h.svc.Labor.List(c.Request.Context(), c.Query("project_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]laborView, 0, len(records))
	for _, r := range records {
		out = append(out, laborView{Record: r, Cost: r.Cost()})
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) createLabor(c *gin.Context) {
	var body createLaborRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	date, err := timeutil.ParseOptionalDate(body.Date)
	if err != nil {
		h.fail(c, err)
		return
	}
	r, err := h.svc.Labor.Create(c.Request.Context(), labor.CreateRequest{
		ProjectID:  body.ProjectID,
		WorkerName: body.WorkerName,
		Role:       body.Role,
		Hours:      body.Hours,
		Overtime:   body.Overtime,
		Date:       date,
		DailyRate:  body.DailyRate,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, laborView{Record: *r, Cost: r.Cost()})
}

func (h *handler) deleteLabor(c *gin.Context) {
	if err := h.svc.Labor.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) listInventory(c *gin.Context) {
	items, err := h.svc.Inventory.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	critical := c.Query("status") == string(inventory.StatusCritical)
	out := make([]inventory.ItemView, 0, len(items))
	for _, item := range items {
		view := item.View()
		if critical && view.Status != inventory.StatusCritical {
			continue
		}
		out = append(out, view)
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) createInventoryItem(c *gin.Context) {
	var body createInventoryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.svc.Inventory.Create(c.Request.Context(), inventory.CreateRequest{
		Name:     body.Name,
		Category: body.Category,
		Quantity: body.Quantity,
		Unit:     body.Unit,
		MinStock: body.MinStock,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item.View())
}

func (h *handler) adjustInventory(c *gin.Context) {
	var body adjustInventoryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.svc.Inventory.SetQuantity(c.Request.Context(), c.Param("id"), *body.Quantity)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item.View())
}

func (h *handler) deleteInventoryItem(c *gin.Context) {
	if err := h.svc.Inventory.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) listActivity(c *gin.Context) {
	since, err := timeutil.ParseOptionalDate(c.Query("since"))
	if err != nil {
		h.fail(c, err)
		return
	}
	opts := activity.ListActivityOptions{
		ProjectID: c.Query("project_id"),
		EntityID:  c.Query("entity_id"),
		Since:     since,
		Limit:     queryInt(c, "limit"),
		Offset:    queryInt(c, "offset"),
	}
	if t := c.Query("type"); t != "" {
		at := activity.ActivityType(t)
		opts.ActivityType = &at
	}
	entries, err := h.svc.Activity.GetRecentActivity(c.Request.Context(), opts)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(entries))
}

func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}
