package models

import (
	"time"

	"github.com/google/uuid"
)

// Record accessors used by the reconciliation plan. Identifier comparison is
// exact UUID equality; timestamp comparison drives last-writer-wins.

func (g Gym) RecordID() uuid.UUID        { return g.ID }
func (g Gym) RecordUpdatedAt() time.Time { return g.LastUpdated }

func (s Spraywall) RecordID() uuid.UUID        { return s.ID }
func (s Spraywall) RecordUpdatedAt() time.Time { return s.LastUpdated }

func (b Boulder) RecordID() uuid.UUID        { return b.ID }
func (b Boulder) RecordUpdatedAt() time.Time { return b.LastUpdated }
