package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const syncLockPrefix = "synclock:"

// releaseScript deletes the lock only when the caller still owns it, so an
// expired-and-reacquired lock is never released by the old holder.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// RedisSyncLockRepository serializes reconciliations per scope key with an
// expiring Redis lock.
type RedisSyncLockRepository struct {
	client *redis.Client
}

func NewRedisSyncLockRepository(client *redis.Client) *RedisSyncLockRepository {
	return &RedisSyncLockRepository{client: client}
}

func (r *RedisSyncLockRepository) Acquire(ctx context.Context, scopeKey string, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	key := syncLockPrefix + scopeKey

	ok, err := r.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", fmt.Errorf("failed to acquire sync lock: %w", err)
	}
	if !ok {
		return "", ErrLockHeld
	}
	return token, nil
}

func (r *RedisSyncLockRepository) Release(ctx context.Context, scopeKey, token string) error {
	key := syncLockPrefix + scopeKey
	if err := releaseScript.Run(ctx, r.client, []string{key}, token).Err(); err != nil {
		return fmt.Errorf("failed to release sync lock: %w", err)
	}
	return nil
}
