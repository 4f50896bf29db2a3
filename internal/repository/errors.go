package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrForeignKeyViolation is returned when a referenced container doesn't exist
	ErrForeignKeyViolation = errors.New("foreign key violation")
)
