// Package id generates identifiers for runs and operations.
// Item identifiers are caller-assigned integers and do not come from here.
package id

import (
	"github.com/google/uuid"
)

// ID is a type alias for UUID.
type ID = uuid.UUID

// New generates a new UUIDv7 (time-ordered UUID), so run IDs sort by start time.
func New() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to V4 if V7 fails (should never happen)
		return uuid.New()
	}
	return id
}

// Short returns 8 random hex characters for operation-scoped IDs.
func Short() string {
	return uuid.New().String()[:8]
}
