package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

type RedisBackend struct {
	RDB *redis.Client
	sf  singleflight.Group
}

func NewRedis(addr, pass string, db int) *RedisBackend {
	return &RedisBackend{
		RDB: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
	}
}

func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.RDB.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return b, err
}

// Put stores without expiry: these keys are the system of record, not a cache.
func (r *RedisBackend) Put(ctx context.Context, key string, payload []byte) error {
	return r.RDB.Set(ctx, key, payload, 0).Err()
}

func (r *RedisBackend) GetOrSeed(ctx context.Context, key string, seed func(context.Context) ([]byte, error)) ([]byte, error) {
	// single flight 合并回源
	v, err, _ := r.sf.Do(key, func() (any, error) {
		b, e := seed(ctx)
		if e != nil {
			return nil, e
		}
		ok, e := r.RDB.SetNX(ctx, key, b, 0).Result()
		if e != nil {
			return nil, e
		}
		if !ok {
			// another process seeded first
			return r.RDB.Get(ctx, key).Bytes()
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (r *RedisBackend) Close() error { return r.RDB.Close() }
