package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/costtrack/internal/domain/expense"
	"github.com/rpggio/costtrack/internal/domain/inventory"
	"github.com/rpggio/costtrack/internal/domain/labor"
	"github.com/rpggio/costtrack/internal/domain/project"
	"github.com/rpggio/costtrack/internal/export"
	"github.com/rpggio/costtrack/internal/timeutil"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors map to nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, expense.ErrProjectNotFound),
		errors.Is(err, labor.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Call list_projects for valid ids"}
	case errors.Is(err, project.ErrProjectExists):
		return &APIError{Code: "PROJECT_EXISTS", Message: "project id already in use", RecoveryHint: "Omit id to generate one"}
	case errors.Is(err, expense.ErrExpenseNotFound):
		return &APIError{Code: "EXPENSE_NOT_FOUND", Message: "expense not found", RecoveryHint: "Call list_expenses for valid ids"}
	case errors.Is(err, inventory.ErrItemNotFound):
		return &APIError{Code: "INVENTORY_NOT_FOUND", Message: "inventory item not found", RecoveryHint: "Call list_inventory for valid ids"}
	case errors.Is(err, labor.ErrRecordNotFound):
		return &APIError{Code: "LABOR_NOT_FOUND", Message: "labor record not found", RecoveryHint: "Call list_labor_records for valid ids"}
	case errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, expense.ErrInvalidInput),
		errors.Is(err, inventory.ErrInvalidInput),
		errors.Is(err, labor.ErrInvalidInput),
		errors.Is(err, timeutil.ErrInvalidDate),
		errors.Is(err, export.ErrUnsupportedFormat):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	default:
		return nil
	}
}

// toolError converts err into the error a tool handler returns.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
