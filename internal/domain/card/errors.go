package card

import "errors"

var (
	// ErrCardNotFound indicates the card doesn't exist.
	ErrCardNotFound = errors.New("card not found")
	// ErrListNotFound indicates the owning or target list doesn't exist.
	ErrListNotFound = errors.New("list not found")
	// ErrInvalidInput indicates invalid input for card operations.
	ErrInvalidInput = errors.New("invalid card input")
	// ErrNoChanges indicates an update request that sets no field.
	ErrNoChanges = errors.New("no changes provided")
)
