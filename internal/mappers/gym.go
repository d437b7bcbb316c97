package mappers

import (
	"time"

	"github.com/alpengrip/cruxsync/internal/models"
	"github.com/alpengrip/cruxsync/internal/remote"
)

// GymFromWire builds a storage gym from a wire record. The local-only
// fields come from the caller: pinned and lastAccessed are never derived
// from the wire.
func GymFromWire(w remote.Gym, pinned bool, lastAccessed time.Time) (models.Gym, error) {
	if w.ID == nil {
		return models.Gym{}, ErrMissingID
	}
	return models.Gym{
		ID:           *w.ID,
		Name:         w.Name,
		Location:     w.Location,
		Description:  w.Description,
		CreatedBy:    w.CreatedBy,
		CreatedAt:    fromMillis(w.CreatedAt),
		LastUpdated:  fromMillis(w.UpdatedAt),
		LastAccessed: lastAccessed,
		Pinned:       pinned,
	}, nil
}

// GymPreservingLocal builds a storage gym from a wire record while keeping
// the existing record's local-only fields, refreshing lastAccessed.
func GymPreservingLocal(w remote.Gym, existing models.Gym, now time.Time) (models.Gym, error) {
	return GymFromWire(w, existing.Pinned, now)
}

// GymToWire strips the local-only fields and produces the wire shape.
func GymToWire(g models.Gym) remote.Gym {
	id := g.ID
	return remote.Gym{
		ID:          &id,
		Name:        g.Name,
		Location:    g.Location,
		Description: g.Description,
		CreatedBy:   g.CreatedBy,
		CreatedAt:   toMillis(g.CreatedAt),
		UpdatedAt:   toMillis(g.LastUpdated),
	}
}
