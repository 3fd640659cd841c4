package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrForeignKeyViolation is returned when a record references a missing parent
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrDuplicateID is returned when an entity with the same ID already exists
	ErrDuplicateID = errors.New("duplicate id")
)
