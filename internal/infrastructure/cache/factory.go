package cache

import (
	"context"
	"fmt"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Opener connects one storage backend
type Opener func(ctx context.Context) (shared.StateStorage, error)

// StateStoreFactory creates the state storage selected by storage.driver
type StateStoreFactory struct {
	storageConfig config.StorageConfig
	openers       map[string]Opener
	logger        *zap.Logger
}

// StateStoreFactoryOption is a functional option for configuring the factory
type StateStoreFactoryOption func(*StateStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StateStoreFactoryOption {
	return func(f *StateStoreFactory) {
		f.logger = logger
	}
}

// WithOpener registers (or replaces) the opener for driver
func WithOpener(driver string, open Opener) StateStoreFactoryOption {
	return func(f *StateStoreFactory) {
		f.openers[driver] = open
	}
}

// NewStateStoreFactory creates a factory that knows the memory and redis
// drivers. SQL and object storage drivers are registered with WithOpener.
func NewStateStoreFactory(storageCfg config.StorageConfig, redisCfg config.RedisConfig, opts ...StateStoreFactoryOption) *StateStoreFactory {
	f := &StateStoreFactory{
		storageConfig: storageCfg,
		logger:        zap.NewNop(),
		openers:       make(map[string]Opener),
	}
	f.openers[config.DriverMemory] = func(context.Context) (shared.StateStorage, error) {
		return NewInMemoryStateStore(), nil
	}
	f.openers[config.DriverRedis] = func(context.Context) (shared.StateStorage, error) {
		return NewRedisStateStore(redisCfg, storageCfg.KeyPrefix)
	}

	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateStore opens the configured backend. When it is unavailable and
// storage.allow_memory_fallback is set, an in-memory store is returned instead.
func (f *StateStoreFactory) CreateStore(ctx context.Context) (shared.StateStorage, error) {
	driver := f.storageConfig.Driver
	open, ok := f.openers[driver]
	if !ok {
		return nil, fmt.Errorf("no opener registered for storage driver %q", driver)
	}

	store, err := open(ctx)
	if err == nil {
		f.logger.Info("using state storage", zap.String("driver", driver))
		return store, nil
	}

	if !f.storageConfig.AllowMemoryFallback || driver == config.DriverMemory {
		return nil, fmt.Errorf("storage driver %q unavailable: %w", driver, err)
	}

	f.logger.Warn("State storage unavailable, falling back to in-memory store. "+
		"Cart, favorites, reviews and profile will not survive a restart.",
		zap.String("driver", driver),
		zap.Error(err),
	)
	return NewInMemoryStateStore(), nil
}
