package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpengrip/cruxsync/internal/models"
	"github.com/alpengrip/cruxsync/internal/remote"
)

func uuidPtr(id uuid.UUID) *uuid.UUID { return &id }

func millis(v int64) *int64 { return &v }

func remoteBoulder(id uuid.UUID, updatedMillis int64, holds ...remote.Hold) remote.Boulder {
	return remote.Boulder{
		ID:        uuidPtr(id),
		Name:      "boulder-" + id.String()[:8],
		Grade:     "6b",
		UpdatedAt: millis(updatedMillis),
		Holds:     holds,
	}
}

func seedBoulder(store *fakeStore, wallID, id uuid.UUID, updatedMillis int64, holds ...models.Hold) {
	store.boulders[id] = models.Boulder{
		ID:          id,
		SpraywallID: wallID,
		Name:        "boulder-" + id.String()[:8],
		Grade:       "6b",
		LastUpdated: time.UnixMilli(updatedMillis).UTC(),
	}
	if len(holds) > 0 {
		store.holds[id] = holds
	}
}

func TestReconcileBoulders_Idempotent(t *testing.T) {
	store := newFakeStore()
	svc := newTestSyncService(store, &fakeSource{}, time.Now())
	wallID := uuid.New()
	ctx := context.Background()

	snapshot := []remote.Boulder{
		remoteBoulder(uuid.New(), 100, remote.Hold{X: 0.1, Y: 0.2, Type: "start"}),
		remoteBoulder(uuid.New(), 200, remote.Hold{X: 0.5, Y: 0.5, Type: "top"}),
	}

	first, err := svc.ReconcileBoulders(ctx, wallID, snapshot)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Upserted)
	assert.Equal(t, 0, first.Deleted)
	assert.Equal(t, 2, first.ChildRowsReplaced)

	beforeBoulders := len(store.boulders)
	beforeHolds := len(store.holds)

	second, err := svc.ReconcileBoulders(ctx, wallID, snapshot)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Upserted, "second pass must not rewrite current records")
	assert.Equal(t, 0, second.Deleted)
	assert.Equal(t, beforeBoulders, len(store.boulders))
	assert.Equal(t, beforeHolds, len(store.holds))
}

func TestReconcileBoulders_PurgeByAbsence(t *testing.T) {
	store := newFakeStore()
	svc := newTestSyncService(store, &fakeSource{}, time.Now())
	wallID := uuid.New()
	keep, drop := uuid.New(), uuid.New()

	seedBoulder(store, wallID, keep, 5)
	seedBoulder(store, wallID, drop, 5, models.Hold{BoulderID: drop, X: 0.3, Y: 0.3, Role: models.HoldRoleHand})

	result, err := svc.ReconcileBoulders(context.Background(), wallID, []remote.Boulder{
		remoteBoulder(keep, 5),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Deleted)
	assert.Contains(t, store.boulders, keep)
	assert.NotContains(t, store.boulders, drop)
	assert.NotContains(t, store.holds, drop, "children go with their parent")
}

func TestReconcileBoulders_LastWriterWins(t *testing.T) {
	store := newFakeStore()
	svc := newTestSyncService(store, &fakeSource{}, time.Now())
	wallID := uuid.New()
	id := uuid.New()
	ctx := context.Background()

	seedBoulder(store, wallID, id, 10)
	localName := store.boulders[id].Name

	// Remote older: local copy untouched.
	older := remoteBoulder(id, 5)
	older.Name = "stale name"
	result, err := svc.ReconcileBoulders(ctx, wallID, []remote.Boulder{older})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Upserted)
	assert.Equal(t, localName, store.boulders[id].Name)

	// Remote strictly newer: overwrite.
	newer := remoteBoulder(id, 11)
	newer.Name = "fresh name"
	result, err = svc.ReconcileBoulders(ctx, wallID, []remote.Boulder{newer})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Upserted)
	assert.Equal(t, "fresh name", store.boulders[id].Name)
}

func TestReconcileBoulders_NullIDSkipped(t *testing.T) {
	store := newFakeStore()
	svc := newTestSyncService(store, &fakeSource{}, time.Now())
	wallID := uuid.New()
	known := uuid.New()

	snapshot := []remote.Boulder{
		{Name: "not created remotely yet", UpdatedAt: millis(50)},
		remoteBoulder(known, 50),
	}

	result, err := svc.ReconcileBoulders(context.Background(), wallID, snapshot)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Upserted)
	assert.Equal(t, 1, result.Skipped)
	assert.Len(t, store.boulders, 1)
	assert.Contains(t, store.boulders, known)
}

func TestReconcileBoulders_ChildFullReplacement(t *testing.T) {
	store := newFakeStore()
	svc := newTestSyncService(store, &fakeSource{}, time.Now())
	wallID := uuid.New()
	id := uuid.New()

	seedBoulder(store, wallID, id, 10,
		models.Hold{BoulderID: id, X: 0.1, Y: 0.1, Role: models.HoldRoleStart, Position: 0},
		models.Hold{BoulderID: id, X: 0.2, Y: 0.2, Role: models.HoldRoleHand, Position: 1},
	)

	// Parent record unchanged (same timestamp) but the hold set differs;
	// holds are still fully replaced.
	result, err := svc.ReconcileBoulders(context.Background(), wallID, []remote.Boulder{
		remoteBoulder(id, 10, remote.Hold{X: 0.9, Y: 0.9, Type: "top"}),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Upserted)
	assert.Equal(t, 1, result.ChildRowsReplaced)
	require.Len(t, store.holds[id], 1)
	assert.Equal(t, models.HoldRoleTop, store.holds[id][0].Role)
}

func TestReconcileBoulders_MalformedHoldSkipsRecord(t *testing.T) {
	store := newFakeStore()
	svc := newTestSyncService(store, &fakeSource{}, time.Now())
	wallID := uuid.New()
	bad, good := uuid.New(), uuid.New()

	snapshot := []remote.Boulder{
		remoteBoulder(bad, 5, remote.Hold{X: 0.5, Y: 0.5, Type: "purple"}),
		remoteBoulder(good, 5, remote.Hold{X: 0.5, Y: 0.5, Type: "hand"}),
	}

	result, err := svc.ReconcileBoulders(context.Background(), wallID, snapshot)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.NotContains(t, store.boulders, bad)
	assert.Contains(t, store.boulders, good)
}

func TestReconcileBoulders_MalformedRemoteKeepsLocalCopy(t *testing.T) {
	store := newFakeStore()
	svc := newTestSyncService(store, &fakeSource{}, time.Now())
	wallID := uuid.New()
	id := uuid.New()

	seedBoulder(store, wallID, id, 10,
		models.Hold{BoulderID: id, X: 0.1, Y: 0.1, Role: models.HoldRoleStart, Position: 0},
	)
	localName := store.boulders[id].Name

	// The remote still has the record; its payload is just unusable. The
	// cached copy must survive, holds included.
	newer := remoteBoulder(id, 20, remote.Hold{X: 0.5, Y: 0.5, Type: "purple"})
	result, err := svc.ReconcileBoulders(context.Background(), wallID, []remote.Boulder{newer})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Deleted, "skipping is not absence")
	assert.Equal(t, 0, result.Upserted)
	require.Contains(t, store.boulders, id)
	assert.Equal(t, localName, store.boulders[id].Name)
	require.Len(t, store.holds[id], 1)
	assert.Equal(t, models.HoldRoleStart, store.holds[id][0].Role)
}

func TestReconcileGyms_PreservesLocalFields(t *testing.T) {
	store := newFakeStore()
	now := time.Now().UTC().Truncate(time.Millisecond)
	svc := newTestSyncService(store, &fakeSource{}, now)
	id := uuid.New()

	store.gyms[id] = models.Gym{
		ID:           id,
		Name:         "old name",
		LastUpdated:  time.UnixMilli(10).UTC(),
		LastAccessed: now.Add(-48 * time.Hour),
		Pinned:       true,
	}

	result, err := svc.ReconcileGyms(context.Background(), []remote.Gym{
		{ID: uuidPtr(id), Name: "new name", UpdatedAt: millis(20)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Upserted)

	merged := store.gyms[id]
	assert.Equal(t, "new name", merged.Name, "remote fields win")
	assert.True(t, merged.Pinned, "pin survives the merge")
	assert.Equal(t, now, merged.LastAccessed, "merge counts as access")
}

func TestReconcileSpraywalls_CascadesToBoulders(t *testing.T) {
	store := newFakeStore()
	svc := newTestSyncService(store, &fakeSource{}, time.Now())
	gymID := uuid.New()
	wallID := uuid.New()
	boulderID := uuid.New()

	store.gyms[gymID] = models.Gym{ID: gymID, Name: "gym"}
	store.walls[wallID] = models.Spraywall{ID: wallID, GymID: gymID, LastUpdated: time.UnixMilli(5)}
	seedBoulder(store, wallID, boulderID, 5, models.Hold{BoulderID: boulderID, X: 0.5, Y: 0.5, Role: models.HoldRoleHand})

	// Empty snapshot: the wall is gone remotely.
	result, err := svc.ReconcileSpraywalls(context.Background(), gymID, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Deleted)
	assert.Empty(t, store.walls)
	assert.Empty(t, store.boulders, "boulders cascade with their wall")
	assert.Empty(t, store.holds)
}

func TestReconcile_SyncInProgress(t *testing.T) {
	store := newFakeStore()
	svc := newTestSyncService(store, &fakeSource{}, time.Now())
	wallID := uuid.New()

	locks := svc.locks.(*fakeLocks)
	_, err := locks.Acquire(context.Background(), spraywallScope(wallID), time.Minute)
	require.NoError(t, err)

	_, err = svc.ReconcileBoulders(context.Background(), wallID, nil)
	assert.ErrorIs(t, err, ErrSyncInProgress)

	// Other scope keys are unaffected.
	_, err = svc.ReconcileBoulders(context.Background(), uuid.New(), nil)
	assert.NoError(t, err)
}

func TestSaveGymFromBackend_PinFlow(t *testing.T) {
	store := newFakeStore()
	now := time.Now().UTC().Truncate(time.Millisecond)
	svc := newTestSyncService(store, &fakeSource{}, now)
	id := uuid.New()

	wire := remote.Gym{ID: uuidPtr(id), Name: "Boulderhalle Ost", UpdatedAt: millis(30)}

	// First save pins the gym.
	gym, err := svc.SaveGymFromBackend(context.Background(), wire, true)
	require.NoError(t, err)
	assert.True(t, gym.Pinned)
	assert.Equal(t, now, gym.LastAccessed)

	// A later unpinned save must not clear the existing pin.
	gym, err = svc.SaveGymFromBackend(context.Background(), wire, false)
	require.NoError(t, err)
	assert.True(t, gym.Pinned)
	assert.True(t, store.gyms[id].Pinned)
}

func TestSaveGymFromBackend_MissingID(t *testing.T) {
	store := newFakeStore()
	svc := newTestSyncService(store, &fakeSource{}, time.Now())

	_, err := svc.SaveGymFromBackend(context.Background(), remote.Gym{Name: "no id"}, false)
	assert.Error(t, err)
	assert.Empty(t, store.gyms)
}

func TestSyncBoulders_FetchesFromSource(t *testing.T) {
	store := newFakeStore()
	wallID := uuid.New()
	id := uuid.New()
	source := &fakeSource{
		boulders: map[uuid.UUID][]remote.Boulder{
			wallID: {remoteBoulder(id, 7, remote.Hold{X: 0.4, Y: 0.6, Type: "feet"})},
		},
	}
	svc := newTestSyncService(store, source, time.Now())

	result, err := svc.SyncBoulders(context.Background(), wallID)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Upserted)
	require.Contains(t, store.boulders, id)
	require.Len(t, store.holds[id], 1)
	assert.Equal(t, models.HoldRoleFoot, store.holds[id][0].Role, "wire alias folds to canonical role")
}
