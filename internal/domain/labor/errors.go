package labor

import "errors"

var (
	// ErrRecordNotFound indicates the labor record doesn't exist.
	ErrRecordNotFound = errors.New("labor record not found")
	// ErrInvalidInput indicates invalid labor input.
	ErrInvalidInput = errors.New("invalid labor input")
	// ErrProjectNotFound indicates the owning project doesn't exist.
	ErrProjectNotFound = errors.New("labor project not found")
)
