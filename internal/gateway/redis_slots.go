package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSlots is a Redis implementation of Slots. Keys are stored as "<prefix>:<key>".
type RedisSlots struct {
	client *redis.Client
	prefix string
}

// NewRedisSlots creates a new instance of RedisSlots.
func NewRedisSlots(client *redis.Client, prefix string) *RedisSlots {
	return &RedisSlots{client: client, prefix: prefix}
}

func (s *RedisSlots) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}

func (s *RedisSlots) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get slot %s: %w", key, err)
	}
	return value, true, nil
}

func (s *RedisSlots) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to put slot %s: %w", key, err)
	}
	return nil
}

func (s *RedisSlots) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}
	return nil
}
