package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/alpengrip/cruxsync/internal/models"
	"github.com/alpengrip/cruxsync/internal/remote"
	"github.com/alpengrip/cruxsync/internal/repositories"
)

// fakeStore is an in-memory stand-in for the Postgres repositories. It
// mirrors their semantics: manual cascade deletion child-first, and bulk
// reconcile upserts that never touch an existing gym's pin.
type fakeStore struct {
	gyms     map[uuid.UUID]models.Gym
	walls    map[uuid.UUID]models.Spraywall
	boulders map[uuid.UUID]models.Boulder
	holds    map[uuid.UUID][]models.Hold

	applyErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		gyms:     make(map[uuid.UUID]models.Gym),
		walls:    make(map[uuid.UUID]models.Spraywall),
		boulders: make(map[uuid.UUID]models.Boulder),
		holds:    make(map[uuid.UUID][]models.Hold),
	}
}

// GymRepository

func (f *fakeStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Gym, error) {
	gym, ok := f.gyms[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &gym, nil
}

func (f *fakeStore) List(ctx context.Context) ([]*models.Gym, error) {
	out := make([]*models.Gym, 0, len(f.gyms))
	for id := range f.gyms {
		gym := f.gyms[id]
		out = append(out, &gym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStore) Upsert(ctx context.Context, gym *models.Gym) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.gyms[gym.ID] = *gym
	return nil
}

func (f *fakeStore) ApplyReconcile(ctx context.Context, deleteIDs []uuid.UUID, upserts []models.Gym) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	for _, id := range deleteIDs {
		f.deleteGym(id)
	}
	for _, gym := range upserts {
		if prior, ok := f.gyms[gym.ID]; ok {
			gym.Pinned = prior.Pinned
		}
		f.gyms[gym.ID] = gym
	}
	return nil
}

func (f *fakeStore) SetPinned(ctx context.Context, id uuid.UUID, pinned bool) error {
	gym, ok := f.gyms[id]
	if !ok {
		return repositories.ErrNotFound
	}
	gym.Pinned = pinned
	f.gyms[id] = gym
	return nil
}

func (f *fakeStore) TouchLastAccessed(ctx context.Context, id uuid.UUID, at time.Time) error {
	gym, ok := f.gyms[id]
	if !ok {
		return repositories.ErrNotFound
	}
	gym.LastAccessed = at
	f.gyms[id] = gym
	return nil
}

func (f *fakeStore) ListStaleIDs(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id, gym := range f.gyms {
		if !gym.Pinned && gym.LastAccessed.Before(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeStore) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleteGym(id)
	return nil
}

func (f *fakeStore) deleteGym(id uuid.UUID) {
	for wallID, wall := range f.walls {
		if wall.GymID == id {
			f.deleteWall(wallID)
		}
	}
	delete(f.gyms, id)
}

func (f *fakeStore) deleteWall(id uuid.UUID) {
	for boulderID, boulder := range f.boulders {
		if boulder.SpraywallID == id {
			delete(f.holds, boulderID)
			delete(f.boulders, boulderID)
		}
	}
	delete(f.walls, id)
}

// SpraywallRepository

func (f *fakeStore) GetWallByID(ctx context.Context, id uuid.UUID) (*models.Spraywall, error) {
	wall, ok := f.walls[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &wall, nil
}

func (f *fakeStore) ListByGym(ctx context.Context, gymID uuid.UUID) ([]*models.Spraywall, error) {
	var out []*models.Spraywall
	for id := range f.walls {
		if f.walls[id].GymID == gymID {
			wall := f.walls[id]
			out = append(out, &wall)
		}
	}
	return out, nil
}

func (f *fakeStore) ApplyWallReconcile(ctx context.Context, gymID uuid.UUID, deleteIDs []uuid.UUID, upserts []models.Spraywall) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	for _, id := range deleteIDs {
		f.deleteWall(id)
	}
	for _, wall := range upserts {
		f.walls[wall.ID] = wall
	}
	return nil
}

// BoulderRepository

func (f *fakeStore) GetBoulderByID(ctx context.Context, id uuid.UUID) (*models.Boulder, error) {
	boulder, ok := f.boulders[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	boulder.Holds = append([]models.Hold(nil), f.holds[id]...)
	return &boulder, nil
}

func (f *fakeStore) ListBySpraywall(ctx context.Context, spraywallID uuid.UUID) ([]*models.Boulder, error) {
	var out []*models.Boulder
	for id := range f.boulders {
		if f.boulders[id].SpraywallID == spraywallID {
			boulder := f.boulders[id]
			boulder.Holds = append([]models.Hold(nil), f.holds[id]...)
			out = append(out, &boulder)
		}
	}
	return out, nil
}

func (f *fakeStore) ApplyBoulderReconcile(ctx context.Context, spraywallID uuid.UUID, deleteIDs []uuid.UUID, upserts []models.Boulder, holdsByBoulder map[uuid.UUID][]models.Hold) (int, error) {
	if f.applyErr != nil {
		return 0, f.applyErr
	}
	for _, id := range deleteIDs {
		delete(f.holds, id)
		delete(f.boulders, id)
	}
	for _, boulder := range upserts {
		boulder.Holds = nil
		f.boulders[boulder.ID] = boulder
	}
	childRows := 0
	for boulderID, holds := range holdsByBoulder {
		f.holds[boulderID] = append([]models.Hold(nil), holds...)
		childRows += len(holds)
	}
	return childRows, nil
}

// wallRepo and boulderRepo adapt fakeStore to the repository interfaces,
// since GetByID exists on all three.
type wallRepo struct{ *fakeStore }

func (r wallRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Spraywall, error) {
	return r.GetWallByID(ctx, id)
}

func (r wallRepo) ApplyReconcile(ctx context.Context, gymID uuid.UUID, deleteIDs []uuid.UUID, upserts []models.Spraywall) error {
	return r.ApplyWallReconcile(ctx, gymID, deleteIDs, upserts)
}

type boulderRepo struct{ *fakeStore }

func (r boulderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Boulder, error) {
	return r.GetBoulderByID(ctx, id)
}

func (r boulderRepo) ApplyReconcile(ctx context.Context, spraywallID uuid.UUID, deleteIDs []uuid.UUID, upserts []models.Boulder, holdsByBoulder map[uuid.UUID][]models.Hold) (int, error) {
	return r.ApplyBoulderReconcile(ctx, spraywallID, deleteIDs, upserts, holdsByBoulder)
}

// fakeLocks serializes scope keys in memory.
type fakeLocks struct {
	held map[string]string
}

func newFakeLocks() *fakeLocks {
	return &fakeLocks{held: make(map[string]string)}
}

func (l *fakeLocks) Acquire(ctx context.Context, scopeKey string, ttl time.Duration) (string, error) {
	if _, taken := l.held[scopeKey]; taken {
		return "", repositories.ErrLockHeld
	}
	token := uuid.NewString()
	l.held[scopeKey] = token
	return token, nil
}

func (l *fakeLocks) Release(ctx context.Context, scopeKey, token string) error {
	if l.held[scopeKey] == token {
		delete(l.held, scopeKey)
	}
	return nil
}

// fakeSource returns canned remote snapshots.
type fakeSource struct {
	gyms     []remote.Gym
	walls    map[uuid.UUID][]remote.Spraywall
	boulders map[uuid.UUID][]remote.Boulder
}

func (s *fakeSource) FetchGyms(ctx context.Context) ([]remote.Gym, error) {
	return s.gyms, nil
}

func (s *fakeSource) FetchGym(ctx context.Context, gymID uuid.UUID) (*remote.Gym, error) {
	for i := range s.gyms {
		if s.gyms[i].ID != nil && *s.gyms[i].ID == gymID {
			return &s.gyms[i], nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *fakeSource) FetchSpraywalls(ctx context.Context, gymID uuid.UUID) ([]remote.Spraywall, error) {
	return s.walls[gymID], nil
}

func (s *fakeSource) FetchBoulders(ctx context.Context, spraywallID uuid.UUID) ([]remote.Boulder, error) {
	return s.boulders[spraywallID], nil
}

// newTestSyncService wires a SyncService over the fakes with a fixed clock.
func newTestSyncService(store *fakeStore, source remote.DataSource, now time.Time) *SyncService {
	s := NewSyncService(store, wallRepo{store}, boulderRepo{store}, newFakeLocks(), source)
	s.now = func() time.Time { return now }
	return s
}
