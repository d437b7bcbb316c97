package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/alpengrip/cruxsync/internal/models"
)

func gymRecord(id uuid.UUID, updated time.Time) models.Gym {
	return models.Gym{ID: id, Name: "gym", LastUpdated: updated}
}

func TestBuildPlan_EmptyLocalUpsertsEverything(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	now := time.Now()

	p := buildPlan(nil, []models.Gym{gymRecord(a, now), gymRecord(b, now)})

	assert.Len(t, p.upserts, 2)
	assert.Empty(t, p.deleteIDs)
}

func TestBuildPlan_PurgeByAbsence(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ts := time.Unix(5, 0)

	local := []models.Gym{gymRecord(a, ts), gymRecord(b, ts)}
	p := buildPlan(local, []models.Gym{gymRecord(a, ts)})

	assert.Empty(t, p.upserts, "equal timestamps stay untouched")
	assert.Equal(t, []uuid.UUID{b}, p.deleteIDs)
}

func TestBuildPlan_LastWriterWins(t *testing.T) {
	id := uuid.New()
	local := []models.Gym{gymRecord(id, time.UnixMilli(10))}

	// Remote older: no write.
	p := buildPlan(local, []models.Gym{gymRecord(id, time.UnixMilli(5))})
	assert.Empty(t, p.upserts)

	// Remote strictly newer: overwrite.
	p = buildPlan(local, []models.Gym{gymRecord(id, time.UnixMilli(11))})
	assert.Len(t, p.upserts, 1)

	// Tie: already current, no redundant write.
	p = buildPlan(local, []models.Gym{gymRecord(id, time.UnixMilli(10))})
	assert.Empty(t, p.upserts)
}

func TestBuildPlan_MissingTimestampAlwaysLoses(t *testing.T) {
	id := uuid.New()
	local := []models.Gym{gymRecord(id, time.UnixMilli(1))}

	// A remote record without a timestamp carries the zero time, older
	// than any real timestamp.
	p := buildPlan(local, []models.Gym{gymRecord(id, time.Time{})})
	assert.Empty(t, p.upserts)

	// But a zero-time remote record new to the cache is still inserted.
	p = buildPlan(nil, []models.Gym{gymRecord(id, time.Time{})})
	assert.Len(t, p.upserts, 1)
}

func TestPlan_ProtectExemptsFromDeletion(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ts := time.Unix(5, 0)

	local := []models.Gym{gymRecord(a, ts), gymRecord(b, ts)}
	p := buildPlan(local, []models.Gym{gymRecord(a, ts)})
	assert.Equal(t, []uuid.UUID{b}, p.deleteIDs)

	p.protect(map[uuid.UUID]struct{}{b: {}})
	assert.Empty(t, p.deleteIDs)
}

func TestBuildPlan_Deterministic(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	local := []models.Gym{gymRecord(a, time.UnixMilli(3)), gymRecord(b, time.UnixMilli(7))}
	remote := []models.Gym{gymRecord(b, time.UnixMilli(9)), gymRecord(c, time.UnixMilli(1))}

	first := buildPlan(local, remote)
	second := buildPlan(local, remote)

	assert.Equal(t, first.upserts, second.upserts)
	assert.Equal(t, first.deleteIDs, second.deleteIDs)
}
