package mappers

import (
	"github.com/google/uuid"

	"github.com/alpengrip/cruxsync/internal/models"
	"github.com/alpengrip/cruxsync/internal/remote"
)

// SpraywallFromWire builds a storage spraywall scoped to the given gym.
// The scope key is authoritative over anything the wire claims about the
// parent.
func SpraywallFromWire(gymID uuid.UUID, w remote.Spraywall) (models.Spraywall, error) {
	if w.ID == nil {
		return models.Spraywall{}, ErrMissingID
	}
	return models.Spraywall{
		ID:          *w.ID,
		GymID:       gymID,
		Name:        w.Name,
		Description: w.Description,
		PhotoURL:    w.PhotoURL,
		Public:      w.Public,
		CreatedBy:   w.CreatedBy,
		CreatedAt:   fromMillis(w.CreatedAt),
		LastUpdated: fromMillis(w.UpdatedAt),
	}, nil
}

func SpraywallToWire(s models.Spraywall) remote.Spraywall {
	id := s.ID
	return remote.Spraywall{
		ID:          &id,
		Name:        s.Name,
		Description: s.Description,
		PhotoURL:    s.PhotoURL,
		Public:      s.Public,
		CreatedBy:   s.CreatedBy,
		CreatedAt:   toMillis(s.CreatedAt),
		UpdatedAt:   toMillis(s.LastUpdated),
	}
}
