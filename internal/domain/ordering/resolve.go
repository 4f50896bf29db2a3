package ordering

import "fmt"

// ResolveInsert picks the slot for a new item. Without a request the item is
// appended; a request past the end is clamped to the append slot.
func ResolveInsert(maxPos int, hasItems bool, requested *int) int {
	next := 0
	if hasItems {
		next = maxPos + 1
	}
	if requested == nil || *requested > next {
		return next
	}
	return *requested
}

// ResolveMove clamps a requested slot for an item already in the container.
func ResolveMove(maxPos, requested int) int {
	return min(requested, maxPos)
}

// CheckDense verifies ascending positions form exactly 0..n-1.
func CheckDense(positions []int) error {
	for i, p := range positions {
		if p != i {
			return fmt.Errorf("%w: expected position %d, found %d", ErrInvariantViolation, i, p)
		}
	}
	return nil
}
