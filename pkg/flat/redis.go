package flat

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/freshko/config"
)

const redisPrefix = "freshko:flat:"

// RedisStore keeps the flat tier in Redis so every tab of the same origin
// shares it. Values are persisted without TTL; the flat tier outlives tabs.
type RedisStore struct {
	rdb *redis.Client
	ctx context.Context
}

// NewRedisStore connects to the configured Redis and verifies it with a ping.
func NewRedisStore() (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("flat: redis ping: %w", err)
	}

	return &RedisStore{rdb: rdb, ctx: ctx}, nil
}

func (s *RedisStore) Get(key string) (string, bool) {
	val, err := s.rdb.Get(s.ctx, redisPrefix+key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (s *RedisStore) Set(key, value string) error {
	return s.rdb.Set(s.ctx, redisPrefix+key, value, 0).Err()
}

func (s *RedisStore) Remove(key string) error {
	return s.rdb.Del(s.ctx, redisPrefix+key).Err()
}

func (s *RedisStore) Clear() error {
	keys, err := s.rdb.Keys(s.ctx, redisPrefix+"*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(s.ctx, keys...).Err()
}

func (s *RedisStore) Keys() []string {
	keys, err := s.rdb.Keys(s.ctx, redisPrefix+"*").Result()
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, strings.TrimPrefix(k, redisPrefix))
	}
	return out
}
