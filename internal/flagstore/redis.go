package flagstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps one profile's flags in a redis hash, for installs that
// share session state across devices.
type RedisStore struct {
	client redis.Cmdable
	hash   string
}

func NewRedisStore(client redis.Cmdable, profile string) *RedisStore {
	if profile == "" {
		profile = "default"
	}
	return &RedisStore{client: client, hash: "notewise:flags:" + profile}
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.HGet(ctx, r.hash, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	return r.client.HSet(ctx, r.hash, key, value).Err()
}

func (r *RedisStore) Remove(ctx context.Context, key string) error {
	return r.client.HDel(ctx, r.hash, key).Err()
}
