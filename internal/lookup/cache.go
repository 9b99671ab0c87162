// Package lookup holds the shared read-through cache of master-data lookup
// collections (cities, provinces, countries, banks, categories, channels).
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/odyssey-erp/odyssey-console/internal/platform/backend"
)

// Collection names.
const (
	Countries  = "countries"
	Provinces  = "provinces"
	Cities     = "cities"
	Banks      = "banks"
	Categories = "categories"
	Channels   = "channels"
)

// Domain is the backend domain serving lookup collections.
const Domain = "masterdata"

// DefaultTTL bounds how long a cached collection is served.
const DefaultTTL = 10 * time.Minute

// DefaultLoadTimeout bounds one backend load of a collection.
const DefaultLoadTimeout = 30 * time.Second

// Getter loads an enveloped payload. *backend.Client satisfies it.
type Getter interface {
	Get(ctx context.Context, path string, dest any) error
}

// Cache serves lookup collections, loading each at most once per version.
type Cache struct {
	getter  Getter
	store   store
	ttl     time.Duration
	group   singleflight.Group
	metrics *Metrics
	logger  *slog.Logger
	loaders map[string]func(context.Context) (any, error)

	loadTimeout time.Duration
}

// CacheOption customises a Cache.
type CacheOption func(*Cache)

// WithMetrics records hits and misses.
func WithMetrics(m *Metrics) CacheOption {
	return func(c *Cache) { c.metrics = m }
}

// WithLogger sets the logger used for degraded cache access.
func WithLogger(logger *slog.Logger) CacheOption {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLoadTimeout bounds a single backend load shared by concurrent callers.
func WithLoadTimeout(d time.Duration) CacheOption {
	return func(c *Cache) {
		if d > 0 {
			c.loadTimeout = d
		}
	}
}

// NewCache builds a cache backed by Redis, or by process memory when rdb is nil.
func NewCache(getter Getter, rdb *redis.Client, ttl time.Duration, opts ...CacheOption) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{getter: getter, ttl: ttl, logger: slog.Default(), loadTimeout: DefaultLoadTimeout}
	if rdb != nil {
		c.store = redisStore{client: rdb}
	} else {
		c.store = newMemoryStore(ttl)
	}
	for _, opt := range opts {
		opt(c)
	}
	c.loaders = map[string]func(context.Context) (any, error){
		Countries:  loaderFor[Country](c, Countries),
		Provinces:  loaderFor[Province](c, Provinces),
		Cities:     loaderFor[City](c, Cities),
		Banks:      loaderFor[Bank](c, Banks),
		Categories: loaderFor[Category](c, Categories),
		Channels:   loaderFor[Channel](c, Channels),
	}
	return c
}

// Endpoint returns the backend endpoint of a lookup collection.
func Endpoint(name string) backend.Endpoint {
	return backend.Endpoint{Domain: Domain, Collection: name}
}

// Names lists the registered collections in a stable order.
func (c *Cache) Names() []string {
	names := make([]string, 0, len(c.loaders))
	for name := range c.loaders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func loaderFor[T any](c *Cache, name string) func(context.Context) (any, error) {
	return func(ctx context.Context) (any, error) {
		var rows []T
		if err := c.getter.Get(ctx, Endpoint(name).Path(), &rows); err != nil {
			return nil, err
		}
		if rows == nil {
			rows = []T{}
		}
		return rows, nil
	}
}

// Get returns the named collection decoded as []T.
func Get[T any](ctx context.Context, c *Cache, name string) ([]T, error) {
	raw, err := c.raw(ctx, name)
	if err != nil {
		return nil, err
	}
	var rows []T
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("lookup: decode %s: %w", name, err)
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

func (c *Cache) raw(ctx context.Context, name string) ([]byte, error) {
	load, ok := c.loaders[name]
	if !ok {
		return nil, fmt.Errorf("lookup: unknown collection %q", name)
	}
	ver, err := c.store.Version(ctx)
	if err != nil {
		c.logger.Warn("lookup cache version unavailable", slog.String("collection", name), slog.Any("error", err))
		ver = 0
	}
	key := versionedKey(name, ver)
	if ver > 0 {
		payload, found, err := c.store.Get(ctx, key)
		switch {
		case err != nil:
			c.logger.Warn("lookup cache read failed", slog.String("key", key), slog.Any("error", err))
		case found:
			c.metrics.hit(name)
			return payload, nil
		}
	}
	c.metrics.miss(name)

	// The shared load outlives any single caller; each caller waits on its own ctx.
	ch := c.group.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.loadTimeout)
		defer cancel()
		rows, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		payload, err := json.Marshal(rows)
		if err != nil {
			return nil, err
		}
		if ver > 0 {
			if err := c.store.Set(loadCtx, key, payload, c.ttl); err != nil {
				c.logger.Warn("lookup cache write failed", slog.String("key", key), slog.Any("error", err))
			}
		}
		return payload, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

// Invalidate bumps the cache version so the next read reloads every collection.
func (c *Cache) Invalidate(ctx context.Context) error {
	ver, err := c.store.Bump(ctx)
	if err != nil {
		return fmt.Errorf("lookup: bump version: %w", err)
	}
	c.logger.Info("lookup cache invalidated", slog.Int64("version", ver))
	return nil
}

// Refresh invalidates the cache and reloads every collection.
func (c *Cache) Refresh(ctx context.Context) error {
	if err := c.Invalidate(ctx); err != nil {
		return err
	}
	return c.Warm(ctx)
}

// Warm loads every collection that is not cached yet.
func (c *Cache) Warm(ctx context.Context) error {
	for _, name := range c.Names() {
		if _, err := c.raw(ctx, name); err != nil {
			return fmt.Errorf("lookup: warm %s: %w", name, err)
		}
	}
	return nil
}

// Countries returns the cached country list.
func (c *Cache) Countries(ctx context.Context) ([]Country, error) {
	return Get[Country](ctx, c, Countries)
}

// Provinces returns the cached province list.
func (c *Cache) Provinces(ctx context.Context) ([]Province, error) {
	return Get[Province](ctx, c, Provinces)
}

// Cities returns the cached city list.
func (c *Cache) Cities(ctx context.Context) ([]City, error) {
	return Get[City](ctx, c, Cities)
}

// Banks returns the cached bank list.
func (c *Cache) Banks(ctx context.Context) ([]Bank, error) {
	return Get[Bank](ctx, c, Banks)
}

// Categories returns the cached category list.
func (c *Cache) Categories(ctx context.Context) ([]Category, error) {
	return Get[Category](ctx, c, Categories)
}

// Channels returns the cached channel list.
func (c *Cache) Channels(ctx context.Context) ([]Channel, error) {
	return Get[Channel](ctx, c, Channels)
}
