// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// lock.go provides a Valkey-backed save lock. A course save runs three
// sequential writes; the lock keeps two instances from interleaving them
// against the same course. The lock key carries a TTL so a crashed
// instance cannot hold a course hostage.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// saveLockPrefix is the Valkey key prefix for per-course save locks.
	saveLockPrefix = "savelock:"

	// DefaultSaveLockTTL bounds how long a lock survives a crashed holder.
	DefaultSaveLockTTL = 30 * time.Second
)

// ErrLocked is returned when another instance holds the save lock.
var ErrLocked = fmt.Errorf("save lock held by another instance")

// SaveLock acquires per-course locks in Valkey using SET NX with expiry.
// It implements the editor's SaveLocker interface.
type SaveLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSaveLock creates a save lock manager backed by the given Valkey client.
func NewSaveLock(client *redis.Client, ttl time.Duration) *SaveLock {
	if ttl == 0 {
		ttl = DefaultSaveLockTTL
	}
	return &SaveLock{client: client, ttl: ttl}
}

// Acquire takes the lock for a course. On success it returns a release
// function; the caller must invoke it when the save completes. Returns
// ErrLocked when another holder has the lock.
func (sl *SaveLock) Acquire(ctx context.Context, courseID uuid.UUID) (func(), error) {
	key := saveLockPrefix + courseID.String()

	ok, err := sl.client.SetNX(ctx, key, "1", sl.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("save lock acquire: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}

	slog.Debug("save lock acquired", "course", courseID)
	return func() {
		// Release outlives the request context.
		rctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sl.client.Del(rctx, key).Err(); err != nil {
			slog.Warn("save lock release error", "course", courseID, "error", err)
		}
	}, nil
}
