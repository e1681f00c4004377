// Copyright (c) 2026 Assal Community.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package cache provides a short-lived redis snapshot of the leaderboard so
// repeated reads do not re-aggregate rankings on every request. Entirely
// best effort: on any redis failure the caller recomputes from the store.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/assal-community/vote-server/models"
)

const leaderboardKey = "leaderboard:v1"

// Leaderboard caches one serialized leaderboard snapshot.
type Leaderboard struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewLeaderboard connects a cache to the given redis address.
func NewLeaderboard(addr, password string, ttl time.Duration) *Leaderboard {
	return &Leaderboard{
		rdb: redis.NewClient(&redis.Options{Addr: addr, Password: password}),
		ttl: ttl,
	}
}

// Get returns the cached snapshot, if any.
func (c *Leaderboard) Get(ctx context.Context) (*models.LeaderboardResponse, bool) {
	raw, err := c.rdb.Get(ctx, leaderboardKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("leaderboard cache read failed", "error", err)
		return nil, false
	}

	var resp models.LeaderboardResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		slog.Warn("leaderboard cache entry corrupt", "error", err)
		return nil, false
	}
	return &resp, true
}

// Set stores a fresh snapshot for the configured TTL.
func (c *Leaderboard) Set(ctx context.Context, resp *models.LeaderboardResponse) {
	raw, err := json.Marshal(resp)
	if err != nil {
		slog.Warn("leaderboard cache encode failed", "error", err)
		return
	}
	if err := c.rdb.Set(ctx, leaderboardKey, raw, c.ttl).Err(); err != nil {
		slog.Warn("leaderboard cache write failed", "error", err)
	}
}

// Close releases the redis connection.
func (c *Leaderboard) Close() error {
	return c.rdb.Close()
}
