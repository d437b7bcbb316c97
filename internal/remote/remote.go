package remote

import (
	"context"

	"github.com/google/uuid"
)

// Wire records as the backend returns them. Identifiers and timestamps are
// optional on the wire: a record with a nil ID is a not-yet-created
// placeholder and is skipped by reconciliation; a nil UpdatedAt is treated
// as older than any real timestamp. Timestamps are milliseconds since epoch.

type Gym struct {
	ID          *uuid.UUID `json:"id"`
	Name        string     `json:"name"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	CreatedBy   *string    `json:"created_by,omitempty"`
	CreatedAt   *int64     `json:"created_at,omitempty"`
	UpdatedAt   *int64     `json:"updated_at,omitempty"`
}

type Spraywall struct {
	ID          *uuid.UUID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	PhotoURL    string     `json:"photo_url"`
	Public      bool       `json:"public"`
	CreatedBy   *string    `json:"created_by,omitempty"`
	CreatedAt   *int64     `json:"created_at,omitempty"`
	UpdatedAt   *int64     `json:"updated_at,omitempty"`
}

// Boulder embeds its holds inline; the mapper layer flattens them into
// child rows for storage.
type Boulder struct {
	ID            *uuid.UUID `json:"id"`
	Name          string     `json:"name"`
	Grade         string     `json:"grade"`
	SetterID      *string    `json:"setter_id,omitempty"`
	AverageRating *float64   `json:"average_rating,omitempty"`
	RatingCount   *int       `json:"rating_count,omitempty"`
	CreatedAt     *int64     `json:"created_at,omitempty"`
	UpdatedAt     *int64     `json:"updated_at,omitempty"`
	Holds         []Hold     `json:"holds"`
}

type Hold struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Type string  `json:"type"`
}

// DataSource fetches remote snapshots for a scope. Implementations own all
// network concerns; callers hand the materialized snapshot to the
// reconciler and do not expect retries here.
type DataSource interface {
	FetchGyms(ctx context.Context) ([]Gym, error)
	FetchGym(ctx context.Context, gymID uuid.UUID) (*Gym, error)
	FetchSpraywalls(ctx context.Context, gymID uuid.UUID) ([]Spraywall, error)
	FetchBoulders(ctx context.Context, spraywallID uuid.UUID) ([]Boulder, error)
}
