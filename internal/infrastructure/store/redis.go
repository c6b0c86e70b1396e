package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	credentialKey  = "console:credential"
	connectTimeout = 5 * time.Second
)

// RedisConfig captures the settings for establishing a Redis connection.
type RedisConfig struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect initialises a Redis client and validates connectivity with a
// ping. A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// RedisStore keeps the credential under a single fixed key, for console
// deployments that share a session across hosts (kiosk mode). No TTL: the
// credential lives until an explicit Remove.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context) (string, error) {
	cred, err := s.client.Get(ctx, credentialKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("store: read credential: %w", err)
	}
	return cred, nil
}

func (s *RedisStore) Set(ctx context.Context, credential string) error {
	if err := s.client.Set(ctx, credentialKey, credential, 0).Err(); err != nil {
		return fmt.Errorf("store: write credential: %w", err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context) error {
	if err := s.client.Del(ctx, credentialKey).Err(); err != nil {
		return fmt.Errorf("store: remove credential: %w", err)
	}
	return nil
}
