package models

import (
	"time"

	"github.com/google/uuid"
)

// Gym is the locally cached copy of a gym record.
//
// LastUpdated is server-authoritative and drives last-writer-wins merges.
// Pinned and LastAccessed are local-only: they are never sent to the remote
// backend and never overwritten by a remote merge.
type Gym struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	CreatedBy    *string   `json:"created_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	LastUpdated  time.Time `json:"last_updated"`
	LastAccessed time.Time `json:"-"`
	Pinned       bool      `json:"-"`
}
