package expense

import "errors"

var (
	// ErrExpenseNotFound indicates the expense doesn't exist.
	ErrExpenseNotFound = errors.New("expense not found")
	// ErrInvalidInput indicates invalid expense input.
	ErrInvalidInput = errors.New("invalid expense input")
	// ErrProjectNotFound indicates the owning project doesn't exist.
	ErrProjectNotFound = errors.New("expense project not found")
)
