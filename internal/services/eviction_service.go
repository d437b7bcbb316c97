package services

import (
	"context"
	"time"

	"github.com/alpengrip/cruxsync/internal/logger"
	"github.com/alpengrip/cruxsync/internal/metrics"
	"github.com/alpengrip/cruxsync/internal/repositories"
)

// DefaultRetentionWindow is how long an unpinned gym survives without being
// accessed before the eviction policy reclaims it.
const DefaultRetentionWindow = 7 * 24 * time.Hour

// EvictionService reclaims space from gyms that are neither pinned nor
// recently accessed. Pinned gyms are never evicted.
type EvictionService struct {
	gyms repositories.GymRepository
	now  func() time.Time
}

func NewEvictionService(gyms repositories.GymRepository) *EvictionService {
	return &EvictionService{gyms: gyms, now: time.Now}
}

// EvictStale deletes every unpinned gym whose last access is strictly older
// than now minus the retention window, cascading through its spraywalls,
// boulders and holds. A gym accessed exactly at the boundary is kept.
// Returns the number of gyms evicted.
func (s *EvictionService) EvictStale(ctx context.Context, retention time.Duration) (int, error) {
	cutoff := s.now().Add(-retention)

	staleIDs, err := s.gyms.ListStaleIDs(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	evicted := 0
	for _, id := range staleIDs {
		if err := s.gyms.Delete(ctx, id); err != nil {
			return evicted, err
		}
		evicted++
	}

	if evicted > 0 {
		metrics.GymsEvicted.Add(float64(evicted))
		logger.FromContext(ctx).Info("evicted stale gyms", "count", evicted, "cutoff", cutoff)
	}
	return evicted, nil
}
