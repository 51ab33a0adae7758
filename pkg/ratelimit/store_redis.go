package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStoreConfig configures the shared Redis store.
type RedisStoreConfig struct {
	// KeyPrefix namespaces this limiter's keys, e.g. "ratelimit:api".
	KeyPrefix string

	// TTL expires idle keys; set it to at least the rate limit window.
	TTL time.Duration
}

// RedisStore keeps request timestamps in Redis sorted sets scored by
// UnixNano, so several API instances enforce one shared limit. Expiry on the
// set keeps idle keys from accumulating.
type RedisStore struct {
	client redis.UniversalClient
	config RedisStoreConfig
}

// NewRedisStore creates a RedisStore on an existing client.
func NewRedisStore(client redis.UniversalClient, config RedisStoreConfig) *RedisStore {
	if config.KeyPrefix == "" {
		config.KeyPrefix = "ratelimit"
	}
	if config.TTL <= 0 {
		config.TTL = time.Minute
	}
	return &RedisStore{client: client, config: config}
}

func (s *RedisStore) redisKey(key string) string {
	return s.config.KeyPrefix + ":" + key
}

// CheckAndAddRequest implements Store. The prune, count, and conditional add
// run in one Lua script so concurrent instances cannot overshoot the limit.
func (s *RedisStore) CheckAndAddRequest(ctx context.Context, key string, timestamp, cutoff time.Time, limit int) (bool, int, error) {
	result, err := checkAndAddScript.Run(ctx, s.client,
		[]string{s.redisKey(key)},
		cutoff.UnixNano(),
		timestamp.UnixNano(),
		limit,
		int64(s.config.TTL/time.Millisecond),
	).Int64Slice()
	if err != nil {
		return false, 0, fmt.Errorf("redis rate limit check: %w", err)
	}
	if len(result) != 2 {
		return false, 0, fmt.Errorf("redis rate limit check: unexpected reply %v", result)
	}
	return result[0] == 1, int(result[1]), nil
}

// checkAndAddScript prunes entries at or before the cutoff score, counts the
// remainder, and adds the new timestamp only when under the limit.
// KEYS[1] = sorted set, ARGV = cutoff, timestamp, limit, ttl millis.
// Returns {allowed, count-before-admission}.
var checkAndAddScript = redis.NewScript(`
local cutoff = tonumber(ARGV[1])
local ts = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', cutoff)
local count = redis.call('ZCARD', KEYS[1])
if count >= limit then
  return {0, count}
end
redis.call('ZADD', KEYS[1], ts, ARGV[2])
redis.call('PEXPIRE', KEYS[1], ttl)
return {1, count}
`)

// Cleanup implements Store. Redis entries expire via PEXPIRE, so only a
// defensive prune of the scan window is done here.
func (s *RedisStore) Cleanup(ctx context.Context, cutoff time.Time) error {
	iter := s.client.Scan(ctx, 0, s.config.KeyPrefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.ZRemRangeByScore(ctx, iter.Val(), "-inf", strconv.FormatInt(cutoff.UnixNano(), 10)).Err(); err != nil {
			return fmt.Errorf("redis rate limit cleanup: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis rate limit scan: %w", err)
	}
	return nil
}

// KeyCount implements Store.
func (s *RedisStore) KeyCount(ctx context.Context) (int, error) {
	count := 0
	iter := s.client.Scan(ctx, 0, s.config.KeyPrefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("redis rate limit scan: %w", err)
	}
	return count, nil
}
