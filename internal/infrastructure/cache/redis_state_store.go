package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/config"
)

// DefaultKeyPrefix namespaces storefront keys inside a shared redis database
const DefaultKeyPrefix = "storefront:"

// RedisStateStore implements StateStorage with one redis string per namespace.
// Keys never expire.
type RedisStateStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisStateStore connects to redis and verifies the connection with PING
func NewRedisStateStore(cfg config.RedisConfig, keyPrefix string) (*RedisStateStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisStateStoreWithClient(client, keyPrefix), nil
}

// NewRedisStateStoreWithClient creates a store with an existing Redis client
func NewRedisStateStoreWithClient(client *redis.Client, keyPrefix string) *RedisStateStore {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &RedisStateStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Key returns the redis key holding ns
func (s *RedisStateStore) Key(ns shared.Namespace) string {
	return s.keyPrefix + ns.String()
}

// Save replaces the value stored for ns
func (s *RedisStateStore) Save(ctx context.Context, ns shared.Namespace, payload []byte) error {
	if err := s.client.Set(ctx, s.Key(ns), payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %s state: %w", ns, err)
	}
	return nil
}

// Load returns the value stored for ns; a missing key is not an error
func (s *RedisStateStore) Load(ctx context.Context, ns shared.Namespace) ([]byte, bool, error) {
	payload, err := s.client.Get(ctx, s.Key(ns)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load %s state: %w", ns, err)
	}
	return payload, true, nil
}

// Close closes the Redis client
func (s *RedisStateStore) Close() error {
	return s.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (s *RedisStateStore) GetClient() *redis.Client {
	return s.client
}

// Ensure RedisStateStore implements StateStorage
var _ shared.StateStorage = (*RedisStateStore)(nil)
