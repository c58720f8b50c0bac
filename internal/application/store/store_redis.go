package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"jobtrack/internal/application/models"
	"jobtrack/internal/application/query"
)

const cacheKeyPrefix = "jobtrack:application:"

// Cached decorates a Store with a Redis read-through cache for single
// record lookups. Writes invalidate the cached entry before returning, so
// a stale read after a successful update is bounded by the TTL only when
// invalidation itself fails. List and Count always hit the inner store;
// caching filtered pages would let totals drift from their contents.
type Cached struct {
	inner  Store
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

type CachedOption func(*Cached)

func WithCacheLogger(logger *slog.Logger) CachedOption {
	return func(c *Cached) {
		c.logger = logger
	}
}

func NewCached(inner Store, client *redis.Client, ttl time.Duration, opts ...CachedOption) *Cached {
	c := &Cached{inner: inner, client: client, ttl: ttl, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cached) FindByID(ctx context.Context, id uuid.UUID) (models.JobApplication, error) {
	key := cacheKeyPrefix + id.String()

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var app models.JobApplication
		if err := json.Unmarshal(payload, &app); err == nil {
			return app, nil
		}
		// Unreadable entries are dropped and re-fetched.
		c.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.WarnContext(ctx, "redis read failed, falling back to store", "error", err)
	}

	app, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return models.JobApplication{}, err
	}
	if payload, err := json.Marshal(app); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "redis cache fill failed", "error", err)
		}
	}
	return app, nil
}

func (c *Cached) Create(ctx context.Context, app models.JobApplication) error {
	return c.inner.Create(ctx, app)
}

func (c *Cached) Update(ctx context.Context, app models.JobApplication) error {
	if err := c.inner.Update(ctx, app); err != nil {
		return err
	}
	c.invalidate(ctx, app.ID)
	return nil
}

func (c *Cached) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *Cached) List(ctx context.Context, q query.Query) ([]models.JobApplication, error) {
	return c.inner.List(ctx, q)
}

func (c *Cached) Count(ctx context.Context, f query.Filter) (int, error) {
	return c.inner.Count(ctx, f)
}

func (c *Cached) invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.client.Del(ctx, cacheKeyPrefix+id.String()).Err(); err != nil {
		c.logger.WarnContext(ctx, "redis invalidation failed", "id", id, "error", err)
	}
}
