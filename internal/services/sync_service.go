package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alpengrip/cruxsync/internal/logger"
	"github.com/alpengrip/cruxsync/internal/mappers"
	"github.com/alpengrip/cruxsync/internal/metrics"
	"github.com/alpengrip/cruxsync/internal/models"
	"github.com/alpengrip/cruxsync/internal/remote"
	"github.com/alpengrip/cruxsync/internal/repositories"
)

// ErrSyncInProgress is returned when a reconciliation for the same scope
// key is already running.
var ErrSyncInProgress = errors.New("sync already in progress for this scope")

const (
	scopeGyms      = "gyms"
	defaultLockTTL = 2 * time.Minute
)

func gymScope(gymID uuid.UUID) string        { return "gym:" + gymID.String() }
func spraywallScope(wallID uuid.UUID) string { return "spraywall:" + wallID.String() }

// ReconcileResult reports what one reconciliation call changed.
type ReconcileResult struct {
	Upserted          int `json:"upserted"`
	Deleted           int `json:"deleted"`
	ChildRowsReplaced int `json:"child_rows_replaced"`
	Skipped           int `json:"skipped"`
}

// SyncService merges remote snapshots into the local cache with
// last-writer-wins conflict resolution and purge-by-absence deletion.
// Reconciliations for the same scope key are serialized through the lock
// repository; different scope keys run independently.
type SyncService struct {
	gyms     repositories.GymRepository
	walls    repositories.SpraywallRepository
	boulders repositories.BoulderRepository
	locks    repositories.SyncLockRepository
	source   remote.DataSource
	lockTTL  time.Duration
	now      func() time.Time
}

func NewSyncService(
	gyms repositories.GymRepository,
	walls repositories.SpraywallRepository,
	boulders repositories.BoulderRepository,
	locks repositories.SyncLockRepository,
	source remote.DataSource,
) *SyncService {
	return &SyncService{
		gyms:     gyms,
		walls:    walls,
		boulders: boulders,
		locks:    locks,
		source:   source,
		lockTTL:  defaultLockTTL,
		now:      time.Now,
	}
}

// SyncGyms fetches the full gym list from the backend and reconciles the
// local cache against it.
func (s *SyncService) SyncGyms(ctx context.Context) (ReconcileResult, error) {
	snapshot, err := s.source.FetchGyms(ctx)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("failed to fetch gyms: %w", err)
	}
	return s.ReconcileGyms(ctx, snapshot)
}

// ReconcileGyms merges a remote gym snapshot into the cache. Local-only
// fields of existing gyms (pinned) survive the merge; last_accessed is
// refreshed on every gym the merge writes.
func (s *SyncService) ReconcileGyms(ctx context.Context, snapshot []remote.Gym) (ReconcileResult, error) {
	release, err := s.lock(ctx, scopeGyms)
	if err != nil {
		return ReconcileResult{}, err
	}
	defer release()

	start := s.now()
	locals, err := s.gyms.List(ctx)
	if err != nil {
		return ReconcileResult{}, err
	}

	existing := make(map[uuid.UUID]*models.Gym, len(locals))
	localValues := make([]models.Gym, 0, len(locals))
	for _, g := range locals {
		existing[g.ID] = g
		localValues = append(localValues, *g)
	}

	skipped := 0
	staged := make([]models.Gym, 0, len(snapshot))
	for _, w := range snapshot {
		gym, mapErr := mapGym(w, existing, start)
		if mapErr != nil {
			skipped++
			continue
		}
		staged = append(staged, gym)
	}

	p := buildPlan(localValues, staged)
	if err := s.gyms.ApplyReconcile(ctx, p.deleteIDs, p.upserts); err != nil {
		metrics.ReconcileRuns.WithLabelValues("gym", "error").Inc()
		return ReconcileResult{}, err
	}

	result := ReconcileResult{
		Upserted: len(p.upserts),
		Deleted:  len(p.deleteIDs),
		Skipped:  skipped,
	}
	s.observe(ctx, "gym", scopeGyms, result, start)
	return result, nil
}

// SyncSpraywalls fetches the walls of one gym and reconciles them.
func (s *SyncService) SyncSpraywalls(ctx context.Context, gymID uuid.UUID) (ReconcileResult, error) {
	snapshot, err := s.source.FetchSpraywalls(ctx, gymID)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("failed to fetch spraywalls: %w", err)
	}
	return s.ReconcileSpraywalls(ctx, gymID, snapshot)
}

// ReconcileSpraywalls merges a remote spraywall snapshot for one gym.
// Touching the gym refreshes its last_accessed so the eviction policy sees
// it as recently used.
func (s *SyncService) ReconcileSpraywalls(ctx context.Context, gymID uuid.UUID, snapshot []remote.Spraywall) (ReconcileResult, error) {
	scope := gymScope(gymID)
	release, err := s.lock(ctx, scope)
	if err != nil {
		return ReconcileResult{}, err
	}
	defer release()

	start := s.now()
	locals, err := s.walls.ListByGym(ctx, gymID)
	if err != nil {
		return ReconcileResult{}, err
	}
	localValues := make([]models.Spraywall, 0, len(locals))
	for _, w := range locals {
		localValues = append(localValues, *w)
	}

	skipped := 0
	staged := make([]models.Spraywall, 0, len(snapshot))
	for _, w := range snapshot {
		wall, mapErr := mappers.SpraywallFromWire(gymID, w)
		if mapErr != nil {
			skipped++
			continue
		}
		staged = append(staged, wall)
	}

	p := buildPlan(localValues, staged)
	if err := s.walls.ApplyReconcile(ctx, gymID, p.deleteIDs, p.upserts); err != nil {
		metrics.ReconcileRuns.WithLabelValues("spraywall", "error").Inc()
		return ReconcileResult{}, err
	}

	if err := s.gyms.TouchLastAccessed(ctx, gymID, start); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return ReconcileResult{}, err
	}

	result := ReconcileResult{
		Upserted: len(p.upserts),
		Deleted:  len(p.deleteIDs),
		Skipped:  skipped,
	}
	s.observe(ctx, "spraywall", scope, result, start)
	return result, nil
}

// SyncBoulders fetches the boulders of one spraywall and reconciles them.
func (s *SyncService) SyncBoulders(ctx context.Context, spraywallID uuid.UUID) (ReconcileResult, error) {
	snapshot, err := s.source.FetchBoulders(ctx, spraywallID)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("failed to fetch boulders: %w", err)
	}
	return s.ReconcileBoulders(ctx, spraywallID, snapshot)
}

// ReconcileBoulders merges a remote boulder snapshot for one spraywall and
// fully replaces the hold rows of every examined boulder, staged or not:
// the parent may be unchanged while its holds differ.
func (s *SyncService) ReconcileBoulders(ctx context.Context, spraywallID uuid.UUID, snapshot []remote.Boulder) (ReconcileResult, error) {
	scope := spraywallScope(spraywallID)
	release, err := s.lock(ctx, scope)
	if err != nil {
		return ReconcileResult{}, err
	}
	defer release()

	start := s.now()
	locals, err := s.boulders.ListBySpraywall(ctx, spraywallID)
	if err != nil {
		return ReconcileResult{}, err
	}
	localValues := make([]models.Boulder, 0, len(locals))
	for _, b := range locals {
		localValues = append(localValues, *b)
	}

	skipped := 0
	staged := make([]models.Boulder, 0, len(snapshot))
	holdsByBoulder := make(map[uuid.UUID][]models.Hold, len(snapshot))
	skippedIDs := make(map[uuid.UUID]struct{})
	for _, w := range snapshot {
		boulder, mapErr := s.mapBoulder(ctx, spraywallID, w)
		if mapErr != nil {
			skipped++
			if w.ID != nil {
				skippedIDs[*w.ID] = struct{}{}
			}
			continue
		}
		staged = append(staged, boulder)
		holdsByBoulder[boulder.ID] = boulder.Holds
	}

	p := buildPlan(localValues, staged)
	// A malformed record with a real id is still present remotely: skipping
	// it must not purge the local copy by absence.
	p.protect(skippedIDs)
	childRows, err := s.boulders.ApplyReconcile(ctx, spraywallID, p.deleteIDs, p.upserts, holdsByBoulder)
	if err != nil {
		metrics.ReconcileRuns.WithLabelValues("boulder", "error").Inc()
		return ReconcileResult{}, err
	}

	result := ReconcileResult{
		Upserted:          len(p.upserts),
		Deleted:           len(p.deleteIDs),
		ChildRowsReplaced: childRows,
		Skipped:           skipped,
	}
	metrics.ReconcileChildRows.Add(float64(childRows))
	s.observe(ctx, "boulder", scope, result, start)
	return result, nil
}

// mapGym converts one wire gym, carrying over the local-only fields of an
// already cached copy.
func mapGym(w remote.Gym, existing map[uuid.UUID]*models.Gym, now time.Time) (models.Gym, error) {
	if w.ID == nil {
		return models.Gym{}, mappers.ErrMissingID
	}
	if prior, ok := existing[*w.ID]; ok {
		return mappers.GymPreservingLocal(w, *prior, now)
	}
	return mappers.GymFromWire(w, false, now)
}

// mapBoulder converts one wire boulder, logging why a malformed record was
// skipped. Individual bad records never abort the snapshot.
func (s *SyncService) mapBoulder(ctx context.Context, spraywallID uuid.UUID, w remote.Boulder) (models.Boulder, error) {
	boulder, err := mappers.BoulderFromWire(spraywallID, w)
	if err != nil {
		if !errors.Is(err, mappers.ErrMissingID) {
			logger.FromContext(ctx).Warn("skipping malformed boulder", "error", err)
		}
		return models.Boulder{}, err
	}
	return boulder, nil
}

// FetchGym retrieves a single gym record from the backend, for callers
// that then pass it to SaveGymFromBackend.
func (s *SyncService) FetchGym(ctx context.Context, gymID uuid.UUID) (*remote.Gym, error) {
	gym, err := s.source.FetchGym(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gym: %w", err)
	}
	return gym, nil
}

// SaveGymFromBackend upserts a single freshly fetched gym, preserving an
// existing pin and refreshing last_accessed. This is the path behind the
// "pin a gym" flow.
func (s *SyncService) SaveGymFromBackend(ctx context.Context, w remote.Gym, pinned bool) (*models.Gym, error) {
	if w.ID == nil {
		return nil, mappers.ErrMissingID
	}
	now := s.now()

	var gym models.Gym
	existing, err := s.gyms.GetByID(ctx, *w.ID)
	switch {
	case err == nil:
		gym, err = mappers.GymFromWire(w, existing.Pinned || pinned, now)
	case errors.Is(err, repositories.ErrNotFound):
		gym, err = mappers.GymFromWire(w, pinned, now)
	default:
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if err := s.gyms.Upsert(ctx, &gym); err != nil {
		return nil, err
	}
	return &gym, nil
}

// lock serializes reconciliations per scope key. Callers must invoke the
// returned release func once the call completes.
func (s *SyncService) lock(ctx context.Context, scopeKey string) (func(), error) {
	token, err := s.locks.Acquire(ctx, scopeKey, s.lockTTL)
	if errors.Is(err, repositories.ErrLockHeld) {
		return nil, ErrSyncInProgress
	}
	if err != nil {
		return nil, err
	}
	return func() {
		if err := s.locks.Release(ctx, scopeKey, token); err != nil {
			logger.FromContext(ctx).Warn("failed to release sync lock", "scope", scopeKey, "error", err)
		}
	}, nil
}

func (s *SyncService) observe(ctx context.Context, entity, scope string, result ReconcileResult, start time.Time) {
	metrics.ReconcileRuns.WithLabelValues(entity, "ok").Inc()
	metrics.ReconcileUpserts.WithLabelValues(entity).Add(float64(result.Upserted))
	metrics.ReconcileDeletes.WithLabelValues(entity).Add(float64(result.Deleted))
	metrics.ReconcileSkipped.WithLabelValues(entity).Add(float64(result.Skipped))
	metrics.ReconcileDuration.WithLabelValues(entity).Observe(time.Since(start).Seconds())

	logger.FromContext(ctx).Info("reconcile complete",
		"entity", entity,
		"scope", scope,
		"upserted", result.Upserted,
		"deleted", result.Deleted,
		"child_rows", result.ChildRowsReplaced,
		"skipped", result.Skipped,
	)
}
