// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// refdata.go provides a Valkey-backed cache for slowly-changing reference
// data such as the project category list. Values are stored as JSON with
// a TTL and an explicit invalidation hook, so callers never hold module-
// level mutable state.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// refKeyPrefix namespaces reference-data keys in Valkey.
	refKeyPrefix = "ref:"

	// DefaultRefTTL is how long reference data stays cached.
	DefaultRefTTL = 10 * time.Minute
)

// RefCache caches JSON-encoded reference data in Valkey. Cache failures
// are logged and reported as misses; the caller always has a fallback
// query path, so a broken cache never blocks a request.
type RefCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRefCache creates a reference-data cache backed by the given Valkey client.
func NewRefCache(client *redis.Client, ttl time.Duration) *RefCache {
	if ttl == 0 {
		ttl = DefaultRefTTL
	}
	return &RefCache{client: client, ttl: ttl}
}

// Get unmarshals the cached value for key into dest. Returns false on
// miss or any cache error.
func (rc *RefCache) Get(ctx context.Context, key string, dest any) bool {
	val, err := rc.client.Get(ctx, refKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		slog.Warn("ref cache get error", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(val, dest); err != nil {
		slog.Warn("ref cache decode error", "key", key, "error", err)
		return false
	}
	return true
}

// Set stores a JSON-encoded value for key with the configured TTL.
func (rc *RefCache) Set(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		slog.Warn("ref cache encode error", "key", key, "error", err)
		return
	}
	if err := rc.client.Set(ctx, refKeyPrefix+key, payload, rc.ttl).Err(); err != nil {
		slog.Warn("ref cache set error", "key", key, "error", err)
	}
}

// Invalidate removes a key from the cache. Called by admin mutations that
// change the underlying reference data.
func (rc *RefCache) Invalidate(ctx context.Context, key string) {
	if err := rc.client.Del(ctx, refKeyPrefix+key).Err(); err != nil {
		slog.Warn("ref cache invalidate error", "key", key, "error", err)
	}
	slog.Debug("ref cache invalidated", "key", key)
}

// CategoriesKey is the cache key for the project category list.
func CategoriesKey() string {
	return "categories"
}
