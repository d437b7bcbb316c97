package mappers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpengrip/cruxsync/internal/models"
	"github.com/alpengrip/cruxsync/internal/remote"
)

func TestGymFromWire_RoundTrip(t *testing.T) {
	id := uuid.New()
	creator := "setter-42"
	created := int64(1700000000000)
	updated := int64(1700000300000)

	wire := remote.Gym{
		ID:          &id,
		Name:        "Boulderwelt",
		Location:    "München",
		Description: "big spray cave",
		CreatedBy:   &creator,
		CreatedAt:   &created,
		UpdatedAt:   &updated,
	}

	now := time.Now().UTC()
	gym, err := GymFromWire(wire, true, now)
	require.NoError(t, err)

	assert.Equal(t, id, gym.ID)
	assert.Equal(t, time.UnixMilli(updated).UTC(), gym.LastUpdated)
	assert.True(t, gym.Pinned)
	assert.Equal(t, now, gym.LastAccessed)

	back := GymToWire(gym)
	assert.Equal(t, wire, back, "shared fields round-trip")
}

func TestGymFromWire_MissingID(t *testing.T) {
	_, err := GymFromWire(remote.Gym{Name: "no id"}, false, time.Now())
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestGymFromWire_MissingTimestampIsZero(t *testing.T) {
	id := uuid.New()
	gym, err := GymFromWire(remote.Gym{ID: &id, Name: "fresh"}, false, time.Now())
	require.NoError(t, err)

	assert.True(t, gym.LastUpdated.IsZero(), "nil wire timestamp sorts below any real one")
	assert.Nil(t, GymToWire(gym).UpdatedAt)
}

func TestGymPreservingLocal(t *testing.T) {
	id := uuid.New()
	updated := int64(2000)
	existing := models.Gym{
		ID:           id,
		Name:         "old",
		Pinned:       true,
		LastAccessed: time.UnixMilli(1000).UTC(),
	}
	now := time.UnixMilli(5000).UTC()

	gym, err := GymPreservingLocal(remote.Gym{ID: &id, Name: "new", UpdatedAt: &updated}, existing, now)
	require.NoError(t, err)

	assert.Equal(t, "new", gym.Name)
	assert.True(t, gym.Pinned, "local pin preserved")
	assert.Equal(t, now, gym.LastAccessed, "access time refreshed, not copied from wire")
}
