package services

import "errors"

var (
	// ErrOrderingConflict means a reorder write observed a stale list:
	// another writer touched the partition between read and write. The
	// caller discards its optimistic reorder and re-fetches canonical
	// order.
	ErrOrderingConflict = errors.New("ordering conflict: list changed underneath the reorder")

	// ErrInvalidPartition means the (page, sub) pair does not name a
	// known info-block partition.
	ErrInvalidPartition = errors.New("invalid page section")
)
