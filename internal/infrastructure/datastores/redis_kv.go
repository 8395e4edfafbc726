package datastores

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// RedisKeyValueStore is a KeyValueStore backed by Redis. Values are JSON
// encoded; every field, including enum variants and UTC timestamps, must
// round-trip losslessly. Keys are namespaced so Values can scan them back.
type RedisKeyValueStore[T any] struct {
	client    *goredis.Client
	namespace string
}

func NewRedisKeyValueStore[T any](client *goredis.Client, namespace string) *RedisKeyValueStore[T] {
	return &RedisKeyValueStore[T]{client: client, namespace: namespace}
}

func (s *RedisKeyValueStore[T]) fullKey(key string) string {
	return s.namespace + ":" + key
}

func (s *RedisKeyValueStore[T]) Set(ctx context.Context, key string, value T) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value for %s: %w", key, err)
	}
	return s.client.Set(ctx, s.fullKey(key), payload, 0).Err()
}

func (s *RedisKeyValueStore[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var zero T
	payload, err := s.client.Get(ctx, s.fullKey(key)).Bytes()
	if err == goredis.Nil {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}
	var value T
	if err := json.Unmarshal(payload, &value); err != nil {
		return zero, false, fmt.Errorf("decode value for %s: %w", key, err)
	}
	return value, true, nil
}

func (s *RedisKeyValueStore[T]) Delete(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Del(ctx, s.fullKey(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisKeyValueStore[T]) Values(ctx context.Context) ([]T, error) {
	var out []T
	iter := s.client.Scan(ctx, 0, s.namespace+":*", 0).Iterator()
	for iter.Next(ctx) {
		payload, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err == goredis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		var value T
		if err := json.Unmarshal(payload, &value); err != nil {
			return nil, fmt.Errorf("decode value for %s: %w", iter.Val(), err)
		}
		out = append(out, value)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
