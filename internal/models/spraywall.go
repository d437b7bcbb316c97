package models

import (
	"time"

	"github.com/google/uuid"
)

// Spraywall belongs to exactly one Gym. Deleting the gym (or the wall
// disappearing from a remote snapshot) cascades to its boulders; the
// cascade is orchestrated in the repository layer, not by the database.
type Spraywall struct {
	ID          uuid.UUID `json:"id"`
	GymID       uuid.UUID `json:"gym_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PhotoURL    string    `json:"photo_url"`
	Public      bool      `json:"public"`
	CreatedBy   *string   `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
}
