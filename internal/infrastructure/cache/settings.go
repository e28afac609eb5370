// Package cache decorates the settings store with a Redis read-through
// cache so gateway calls do not hit Postgres on every request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopfront/payments-worldpay/internal/application"
	"github.com/shopfront/payments-worldpay/internal/domain"
)

const settingsKey = "worldpay:settings"

// SettingsCache wraps a SettingsStore with a Redis cache. Save and
// ClearCache invalidate the cached copy; Load repopulates it.
type SettingsCache struct {
	inner  application.SettingsStore
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewSettingsCache(inner application.SettingsStore, client *redis.Client, ttl time.Duration, logger *slog.Logger) *SettingsCache {
	return &SettingsCache{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *SettingsCache) Load(ctx context.Context) (*domain.Settings, error) {
	raw, err := c.client.Get(ctx, settingsKey).Bytes()
	if err == nil {
		var settings domain.Settings
		if err := json.Unmarshal(raw, &settings); err == nil {
			return &settings, nil
		}
		// Corrupt entry, fall through to the store.
		c.logger.Warn("Dropping unreadable cached settings")
		c.client.Del(ctx, settingsKey)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("Settings cache read failed", "error", err)
	}

	settings, err := c.inner.Load(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(settings); err == nil {
		if err := c.client.Set(ctx, settingsKey, raw, c.ttl).Err(); err != nil {
			c.logger.Warn("Settings cache write failed", "error", err)
		}
	}
	return settings, nil
}

func (c *SettingsCache) Save(ctx context.Context, settings *domain.Settings) error {
	if err := c.inner.Save(ctx, settings); err != nil {
		return err
	}
	return c.ClearCache(ctx)
}

func (c *SettingsCache) Delete(ctx context.Context) error {
	if err := c.inner.Delete(ctx); err != nil {
		return err
	}
	return c.ClearCache(ctx)
}

func (c *SettingsCache) ClearCache(ctx context.Context) error {
	if err := c.client.Del(ctx, settingsKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate settings cache: %w", err)
	}
	return nil
}
