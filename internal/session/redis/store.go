package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Store persists session data in a Redis hash per session, so a dashboard
// session survives process restarts and is shared across replicas. Each write
// refreshes the session TTL.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore wraps an existing Redis client. A non-positive ttl disables
// expiry.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

// Get returns the value for a key within a session if present.
func (s *Store) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	value, err := s.client.HGet(ctx, sessionKey(sessionID), key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("session get %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores or overwrites a key within a session and refreshes its TTL.
func (s *Store) Set(ctx context.Context, sessionID, key, value string) error {
	redisKey := sessionKey(sessionID)
	if err := s.client.HSet(ctx, redisKey, key, value).Err(); err != nil {
		return fmt.Errorf("session set %q: %w", key, err)
	}
	if s.ttl > 0 {
		if err := s.client.Expire(ctx, redisKey, s.ttl).Err(); err != nil {
			return fmt.Errorf("session expire: %w", err)
		}
	}
	return nil
}

// Delete removes a single key from a session.
func (s *Store) Delete(ctx context.Context, sessionID, key string) error {
	if err := s.client.HDel(ctx, sessionKey(sessionID), key).Err(); err != nil {
		return fmt.Errorf("session delete %q: %w", key, err)
	}
	return nil
}

// Clear drops the whole session.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}

// CheckHealth pings Redis with a short deadline. Used by the readiness probe.
func CheckHealth(ctx context.Context, client *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return client.Ping(ctx).Err()
}
