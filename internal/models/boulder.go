package models

import (
	"time"

	"github.com/google/uuid"
)

// Boulder belongs to exactly one Spraywall. Its holds are owned children:
// whenever a boulder is synchronized the full hold set is replaced, never
// incrementally patched.
type Boulder struct {
	ID            uuid.UUID `json:"id"`
	SpraywallID   uuid.UUID `json:"spraywall_id"`
	Name          string    `json:"name"`
	Grade         string    `json:"grade"`
	SetterID      *string   `json:"setter_id,omitempty"`
	AverageRating *float64  `json:"average_rating,omitempty"`
	RatingCount   *int      `json:"rating_count,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	LastUpdated   time.Time `json:"last_updated"`
	Holds         []Hold    `json:"holds,omitempty"`
}
