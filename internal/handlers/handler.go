package handlers

import (
	"context"
	"time"

	"github.com/alpengrip/cruxsync/internal/repositories"
	"github.com/alpengrip/cruxsync/internal/services"
)

type claimsKey struct{}

func withClaims(ctx context.Context, claims *services.TokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

func claimsFromContext(ctx context.Context) (*services.TokenClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*services.TokenClaims)
	return claims, ok
}

// Handler bundles the HTTP endpoints over the cache and its services.
type Handler struct {
	auth      *services.AuthService
	sync      *services.SyncService
	eviction  *services.EvictionService
	gyms      repositories.GymRepository
	walls     repositories.SpraywallRepository
	boulders  repositories.BoulderRepository
	retention time.Duration
}

func NewHandler(
	auth *services.AuthService,
	sync *services.SyncService,
	eviction *services.EvictionService,
	gyms repositories.GymRepository,
	walls repositories.SpraywallRepository,
	boulders repositories.BoulderRepository,
	retention time.Duration,
) *Handler {
	return &Handler{
		auth:      auth,
		sync:      sync,
		eviction:  eviction,
		gyms:      gyms,
		walls:     walls,
		boulders:  boulders,
		retention: retention,
	}
}
