package locks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker serializes across every instance sharing the redis server.
// A lock expires after ttl so a crashed holder cannot block a key forever.
type RedisLocker struct {
	rdb   redis.UniversalClient
	ttl   time.Duration
	retry time.Duration
}

func NewRedisLocker(rdb redis.UniversalClient, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &RedisLocker{rdb: rdb, ttl: ttl, retry: 25 * time.Millisecond}
}

func (v *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	for {
		ok, err := v.rdb.SetNX(ctx, key, token, v.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("unable to acquire lock %s: %v", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(v.retry):
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			if err := releaseScript.Run(context.Background(), v.rdb, []string{key}, token).Err(); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("An error occurred when releasing lock...")
			}
		})
	}, nil
}
