package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on top of a Redis client. TTL expiry is
// enforced by Redis itself via SET with expiration.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisStore creates a Redis-backed session store. All keys are
// namespaced with the "session:" prefix.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{
		client:    client,
		keyPrefix: "session:",
	}
}

func (s *RedisStore) Set(ctx context.Context, token, userID string, ttl time.Duration) error {
	if token == "" {
		return ErrEmptyToken
	}
	if err := s.client.Set(ctx, s.keyPrefix+token, userID, ttl).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrEmptyToken
	}
	userID, err := s.client.Get(ctx, s.keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", errors.Join(ErrStoreUnavailable, err)
	}
	return userID, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if err := s.client.Del(ctx, s.keyPrefix+token).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
