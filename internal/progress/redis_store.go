package progress

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// redisStore keeps each trainee's flags in a single hash. Writes are
// idempotent sets, so no locking is needed; no TTL because training progress
// must survive long gaps between sessions.
type redisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed progress store.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) key(traineeID string) string {
	return fmt.Sprintf("trainee:%s:progress", traineeID)
}

func (s *redisStore) Get(ctx context.Context, traineeID, key string) (bool, error) {
	val, err := s.client.HGet(ctx, s.key(traineeID), key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val == "1", nil
}

func (s *redisStore) Set(ctx context.Context, traineeID, key string) error {
	return s.client.HSet(ctx, s.key(traineeID), key, "1").Err()
}

func (s *redisStore) GetValue(ctx context.Context, traineeID, key string) (string, error) {
	val, err := s.client.HGet(ctx, s.key(traineeID), key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *redisStore) SetValue(ctx context.Context, traineeID, key, value string) error {
	return s.client.HSet(ctx, s.key(traineeID), key, value).Err()
}

func (s *redisStore) SetValueIfAbsent(ctx context.Context, traineeID, key, value string) (bool, error) {
	return s.client.HSetNX(ctx, s.key(traineeID), key, value).Result()
}

func (s *redisStore) ResetAll(ctx context.Context, traineeID string, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.HDel(ctx, s.key(traineeID), keys...).Err()
}
