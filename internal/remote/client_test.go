package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchBoulders(t *testing.T) {
	wallID := uuid.New()
	boulderID := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spraywalls/"+wallID.String()+"/boulders", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{
			"id": "` + boulderID.String() + `",
			"name": "Mono Madness",
			"grade": "7c",
			"updated_at": 1700000000000,
			"holds": [{"x": 0.25, "y": 0.75, "type": "start"}]
		}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token-123")
	boulders, err := client.FetchBoulders(context.Background(), wallID)
	require.NoError(t, err)

	require.Len(t, boulders, 1)
	require.NotNil(t, boulders[0].ID)
	assert.Equal(t, boulderID, *boulders[0].ID)
	assert.Equal(t, "Mono Madness", boulders[0].Name)
	require.Len(t, boulders[0].Holds, 1)
	assert.Equal(t, "start", boulders[0].Holds[0].Type)
}

func TestClient_NullIDPassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": null, "name": "draft gym"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	gyms, err := client.FetchGyms(context.Background())
	require.NoError(t, err)

	require.Len(t, gyms, 1)
	assert.Nil(t, gyms[0].ID, "null ids are preserved for the reconciler to skip")
}

func TestClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.FetchGyms(context.Background())
	assert.Error(t, err)
}
