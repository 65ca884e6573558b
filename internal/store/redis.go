package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "booking:"

// RedisBackend stores each collection document under a single key.
type RedisBackend struct {
	client *redis.Client
}

func NewRedisBackend(ctx context.Context, addr string, db int) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return &RedisBackend{client: client}, nil
}

func (b *RedisBackend) Load(ctx context.Context, collection string) ([]byte, bool, error) {
	doc, err := b.client.Get(ctx, redisKeyPrefix+collection).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load collection %s: %w", collection, err)
	}
	return doc, true, nil
}

func (b *RedisBackend) Save(ctx context.Context, collection string, doc []byte) error {
	if err := b.client.Set(ctx, redisKeyPrefix+collection, doc, 0).Err(); err != nil {
		return fmt.Errorf("save collection %s: %w", collection, err)
	}
	return nil
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}
