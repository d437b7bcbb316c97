package mappers

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/alpengrip/cruxsync/internal/models"
	"github.com/alpengrip/cruxsync/internal/remote"
)

// BoulderFromWire builds a storage boulder scoped to the given spraywall
// and flattens the inline wire holds into child rows tagged with the
// parent id. Hold order on the wire is preserved through the Position
// field. A hold with an unknown role or out-of-range coordinates makes
// the whole boulder malformed; callers skip such records.
func BoulderFromWire(spraywallID uuid.UUID, w remote.Boulder) (models.Boulder, error) {
	if w.ID == nil {
		return models.Boulder{}, ErrMissingID
	}

	holds := make([]models.Hold, 0, len(w.Holds))
	for i, wh := range w.Holds {
		role, err := models.ParseHoldRole(wh.Type)
		if err != nil {
			return models.Boulder{}, fmt.Errorf("hold %d of boulder %s: %w", i, *w.ID, err)
		}
		hold := models.Hold{
			BoulderID: *w.ID,
			X:         wh.X,
			Y:         wh.Y,
			Role:      role,
			Position:  i,
		}
		if err := validate.Struct(hold); err != nil {
			return models.Boulder{}, fmt.Errorf("hold %d of boulder %s: %w", i, *w.ID, err)
		}
		holds = append(holds, hold)
	}

	return models.Boulder{
		ID:            *w.ID,
		SpraywallID:   spraywallID,
		Name:          w.Name,
		Grade:         w.Grade,
		SetterID:      w.SetterID,
		AverageRating: w.AverageRating,
		RatingCount:   w.RatingCount,
		CreatedAt:     fromMillis(w.CreatedAt),
		LastUpdated:   fromMillis(w.UpdatedAt),
		Holds:         holds,
	}, nil
}

// BoulderToWire re-inlines the child holds in position order.
func BoulderToWire(b models.Boulder) remote.Boulder {
	id := b.ID
	holds := make([]remote.Hold, len(b.Holds))
	for i, h := range b.Holds {
		holds[i] = remote.Hold{X: h.X, Y: h.Y, Type: string(h.Role)}
	}
	return remote.Boulder{
		ID:            &id,
		Name:          b.Name,
		Grade:         b.Grade,
		SetterID:      b.SetterID,
		AverageRating: b.AverageRating,
		RatingCount:   b.RatingCount,
		CreatedAt:     toMillis(b.CreatedAt),
		UpdatedAt:     toMillis(b.LastUpdated),
		Holds:         holds,
	}
}
