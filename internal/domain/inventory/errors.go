package inventory

import "errors"

var (
	// ErrItemNotFound indicates the inventory item doesn't exist.
	ErrItemNotFound = errors.New("inventory item not found")
	// ErrInvalidInput indicates invalid inventory input.
	ErrInvalidInput = errors.New("invalid inventory input")
)
