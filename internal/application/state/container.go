// Package state provides the persisted state container every entity store is built on.
package state

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Mutation computes the next value from the current one. It reports whether
// anything changed; unchanged results are not written back.
type Mutation[T any] func(current T) (next T, changed bool, err error)

// Container holds the latest value of one store and writes the complete
// value to its namespace after each change. Mutations are serialized. The
// in-memory value is only replaced once the save has succeeded.
type Container[T any] struct {
	mu      sync.Mutex
	ns      shared.Namespace
	storage shared.StateStorage
	value   T
	logger  *zap.Logger
}

// Option configures a Container
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger used for load and save diagnostics
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates a container holding initial until Load replaces it
func New[T any](storage shared.StateStorage, ns shared.Namespace, initial T, opts ...Option) *Container[T] {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Container[T]{
		ns:      ns,
		storage: storage,
		value:   initial,
		logger:  o.logger.With(zap.String("namespace", ns.String())),
	}
}

// Load rehydrates the container from storage. Nothing stored keeps the
// initial value. An undecodable payload is logged and also keeps the initial
// value; a storage failure is returned.
func (c *Container[T]) Load(ctx context.Context) error {
	payload, found, err := c.storage.Load(ctx, c.ns)
	if err != nil {
		return fmt.Errorf("load %s state: %w", c.ns, err)
	}
	if !found {
		c.logger.Debug("no persisted state, using initial value")
		return nil
	}

	var decoded T
	if err := json.Unmarshal(payload, &decoded); err != nil {
		c.logger.Warn("discarding unreadable persisted state", zap.Error(err))
		return nil
	}

	c.mu.Lock()
	c.value = decoded
	c.mu.Unlock()
	return nil
}

// Get returns the current value
func (c *Container[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Namespace returns the storage namespace
func (c *Container[T]) Namespace() shared.Namespace {
	return c.ns
}

// Update applies fn and persists the result. When fn fails or the save
// fails the held value is unchanged and the error is returned.
func (c *Container[T]) Update(ctx context.Context, fn Mutation[T]) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, changed, err := fn(c.value)
	if err != nil {
		return c.value, err
	}
	if !changed {
		return c.value, nil
	}

	payload, err := json.Marshal(next)
	if err != nil {
		return c.value, fmt.Errorf("encode %s state: %w", c.ns, err)
	}
	if err := c.storage.Save(ctx, c.ns, payload); err != nil {
		c.logger.Error("failed to persist state", zap.Error(err))
		return c.value, fmt.Errorf("save %s state: %w", c.ns, err)
	}

	c.value = next
	return next, nil
}

// Set replaces the value wholesale
func (c *Container[T]) Set(ctx context.Context, v T) error {
	_, err := c.Update(ctx, func(T) (T, bool, error) { return v, true, nil })
	return err
}
