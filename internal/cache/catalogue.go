// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// catalogue.go provides a Valkey-backed cache for the installed theme list.
// The catalogue is read on every editor open but changes only when a theme
// package is installed or updated, so the serialized list is kept in Valkey
// and invalidated on writes.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"coursecraft/internal/models"
)

const (
	// themesKey is the Valkey key holding the serialized theme list.
	themesKey = "catalogue:themes"

	// DefaultCatalogueTTL is how long the theme list stays cached.
	DefaultCatalogueTTL = 10 * time.Minute
)

// CatalogueCache manages the cached theme catalogue in Valkey.
type CatalogueCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogueCache creates a catalogue cache backed by the given Valkey client.
func NewCatalogueCache(client *redis.Client, ttl time.Duration) *CatalogueCache {
	if ttl == 0 {
		ttl = DefaultCatalogueTTL
	}
	return &CatalogueCache{client: client, ttl: ttl}
}

// GetThemes retrieves the cached theme list. Returns false on miss or on
// any cache error; callers fall back to the store.
func (cc *CatalogueCache) GetThemes(ctx context.Context) ([]models.Theme, bool) {
	val, err := cc.client.Get(ctx, themesKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("catalogue cache get error", "error", err)
		return nil, false
	}

	var themes []models.Theme
	if err := json.Unmarshal(val, &themes); err != nil {
		slog.Warn("catalogue cache decode error", "error", err)
		return nil, false
	}
	slog.Debug("catalogue cache hit", "themes", len(themes))
	return themes, true
}

// SetThemes stores the theme list with the configured TTL.
func (cc *CatalogueCache) SetThemes(ctx context.Context, themes []models.Theme) {
	data, err := json.Marshal(themes)
	if err != nil {
		slog.Warn("catalogue cache encode error", "error", err)
		return
	}
	if err := cc.client.Set(ctx, themesKey, data, cc.ttl).Err(); err != nil {
		slog.Warn("catalogue cache set error", "error", err)
	}
}

// Invalidate removes the cached theme list. Called after a theme install
// or update so the next editor open sees the fresh catalogue.
func (cc *CatalogueCache) Invalidate(ctx context.Context) {
	if err := cc.client.Del(ctx, themesKey).Err(); err != nil {
		slog.Warn("catalogue cache invalidate error", "error", err)
	}
	slog.Debug("catalogue cache invalidated")
}
