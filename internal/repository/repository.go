// Package repository enforces each entity type's invariants on top of the
// document store: contiguous sibling positions, cascade deletes, and weak
// reference pruning. Missing targets are reported as nil results, not errors.
package repository

import (
	"time"

	"github.com/google/uuid"
)

func newID() string {
	return uuid.NewString()
}

// nowMillis matches the persisted timestamp format (epoch milliseconds).
func nowMillis() int64 {
	return time.Now().UnixMilli()
}
