package list

import "errors"

var (
	// ErrListNotFound indicates the list doesn't exist.
	ErrListNotFound = errors.New("list not found")
	// ErrBoardNotFound indicates the owning or target board doesn't exist.
	ErrBoardNotFound = errors.New("board not found")
	// ErrInvalidInput indicates invalid input for list operations.
	ErrInvalidInput = errors.New("invalid list input")
)
