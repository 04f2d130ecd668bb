package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the bucket map in a single Redis string so every mutation
// stays a full read/rewrite of the same blob.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, key: StorageKey}
}

func (s *RedisStore) Read(ctx context.Context) (map[string]int, error) {
	raw, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return map[string]int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("slots: reading %s: %w", s.key, err)
	}
	buckets := map[string]int{}
	if err := json.Unmarshal([]byte(raw), &buckets); err != nil {
		// A corrupt blob reads as empty, same as the original reader.
		return map[string]int{}, nil
	}
	return buckets, nil
}

func (s *RedisStore) Write(ctx context.Context, buckets map[string]int) error {
	raw, err := json.Marshal(buckets)
	if err != nil {
		return fmt.Errorf("slots: encoding buckets: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("slots: writing %s: %w", s.key, err)
	}
	return nil
}
