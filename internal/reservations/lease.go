package reservations

import (
	"context"
	"fmt"
	"time"

	"boothreserve/internal/shared/constants"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const SweepLeaseKey = constants.LEASE_KEY_SWEEPER

// Deletes the key only if this replica still owns it
const luaReleaseLease = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`

var releaseLeaseScript = redis.NewScript(luaReleaseLease)

// RedisLease is a SET NX PX lease owned by a random per-process token
type RedisLease struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	token  string
}

func NewRedisLease(client *redis.Client, key string, ttl time.Duration) *RedisLease {
	if key == "" {
		key = SweepLeaseKey
	}
	return &RedisLease{
		client: client,
		key:    key,
		ttl:    ttl,
		token:  uuid.NewString(),
	}
}

func (l *RedisLease) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key, l.token, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire sweep lease: %w", err)
	}
	return ok, nil
}

func (l *RedisLease) Release(ctx context.Context) error {
	if err := releaseLeaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err(); err != nil {
		return fmt.Errorf("release sweep lease: %w", err)
	}
	return nil
}

var _ Lease = (*RedisLease)(nil)
