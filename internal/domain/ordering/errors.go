package ordering

import "errors"

var (
	// ErrItemNotFound indicates the item to move or remove doesn't exist.
	ErrItemNotFound = errors.New("item not found")
	// ErrContainerNotFound indicates the container to insert into or move to doesn't exist.
	ErrContainerNotFound = errors.New("container not found")
	// ErrInvalidPosition indicates a negative requested position.
	ErrInvalidPosition = errors.New("invalid position")
	// ErrInvalidRange indicates a ledger range whose bounds are out of order.
	ErrInvalidRange = errors.New("invalid position range")
	// ErrInvariantViolation indicates a container's positions are not dense after a mutation.
	ErrInvariantViolation = errors.New("position invariant violated")
	// ErrConcurrentModification indicates the item kept changing container while waiting for its lock.
	ErrConcurrentModification = errors.New("item modified concurrently")
)
