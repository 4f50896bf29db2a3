package board

import "errors"

var (
	// ErrBoardNotFound indicates the board doesn't exist.
	ErrBoardNotFound = errors.New("board not found")
	// ErrInvalidInput indicates invalid input for board operations.
	ErrInvalidInput = errors.New("invalid board input")
	// ErrSnapshotsDisabled indicates no snapshot store is configured.
	ErrSnapshotsDisabled = errors.New("snapshots disabled")
	// ErrSnapshotNotFound indicates no snapshot exists for the board.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
