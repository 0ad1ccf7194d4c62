// Package ordering maintains the dense zero-based order of user-sortable
// lists (info blocks, gallery images). Within one partition the set of
// order values is always {0..n-1}, no gaps, no duplicates.
package ordering

// Direction of a single-step move.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Orderable is a record carrying a dense order index. Implementations
// are pointers so SetOrderIndex mutates the underlying record.
type Orderable interface {
	OrderIndex() int
	SetOrderIndex(int)
}

// MoveOne swaps the element at index with its neighbor in the given
// direction and renumbers the list so every element's order equals its
// positional index. The list must already be sorted by position.
//
// It returns the records whose stored order actually changed — the
// swapped pair for a well-formed list — so the caller can persist them
// as a single transactional write. ok is false when the move is a no-op:
// index out of range, or already at the boundary in that direction.
func MoveOne[T Orderable](list []T, index int, dir Direction) (changed []T, ok bool) {
	if index < 0 || index >= len(list) {
		return nil, false
	}

	var neighbor int
	switch dir {
	case DirectionUp:
		neighbor = index - 1
	case DirectionDown:
		neighbor = index + 1
	default:
		return nil, false
	}
	if neighbor < 0 || neighbor >= len(list) {
		return nil, false
	}

	list[index], list[neighbor] = list[neighbor], list[index]

	// Renumbering the whole list (not just the pair) also repairs any
	// gaps or duplicates a partial write may have left behind; only the
	// records whose value moved are reported for persistence.
	for i, item := range list {
		if item.OrderIndex() != i {
			item.SetOrderIndex(i)
			changed = append(changed, item)
		}
	}

	return changed, true
}

// IsDense reports whether the list, in slice position order, carries the
// order values {0..n-1}. Callers use it to detect a torn reorder write
// before trusting a partition read.
func IsDense[T Orderable](list []T) bool {
	for i, item := range list {
		if item.OrderIndex() != i {
			return false
		}
	}
	return true
}
