package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rpggio/costtrack/internal/domain/expense"
	"github.com/rpggio/costtrack/internal/domain/inventory"
	"github.com/rpggio/costtrack/internal/domain/labor"
	"github.com/rpggio/costtrack/internal/domain/project"
	"github.com/rpggio/costtrack/internal/export"
	"github.com/rpggio/costtrack/internal/timeutil"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, expense.ErrProjectNotFound),
		errors.Is(err, expense.ErrExpenseNotFound),
		errors.Is(err, labor.ErrProjectNotFound),
		errors.Is(err, labor.ErrRecordNotFound),
		errors.Is(err, inventory.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, project.ErrProjectExists):
		return http.StatusConflict
	case errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, expense.ErrInvalidInput),
		errors.Is(err, labor.ErrInvalidInput),
		errors.Is(err, inventory.ErrInvalidInput),
		errors.Is(err, timeutil.ErrInvalidDate),
		errors.Is(err, export.ErrUnsupportedFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		if h.logger != nil {
			h.logger.Error("request failed", "path", c.FullPath(), "error", err)
		}
		msg = "internal error"
	}
	c.JSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
