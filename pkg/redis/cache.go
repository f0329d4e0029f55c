package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Skyxo/killer/pkg/rediskey"
	redisv8 "github.com/go-redis/redis/v8"
)

// kept below the lifetime of signed photo URLs embedded in the cached JSON
const LeaderboardCacheExpiration = time.Minute

// LeaderboardVariant names one rendering of the leaderboard. Renderings are versioned by the number of
// departures they were built from, so a departure never has to invalidate anything.
func LeaderboardVariant(visibility string, departures int) string {
	return fmt.Sprintf("%s:%d", visibility, departures)
}

// SetCachedLeaderboard stores one rendering of the leaderboard as JSON
func (redisDriver *Driver) SetCachedLeaderboard(ctx context.Context, variant string, data []byte) error {
	return redisDriver.client.Set(ctx, rediskey.Leaderboard(redisDriver.gameID, variant), data, LeaderboardCacheExpiration).Err()
}

// GetCachedLeaderboard returns nil without error when nothing is cached
func (redisDriver *Driver) GetCachedLeaderboard(ctx context.Context, variant string) ([]byte, error) {
	data, err := redisDriver.client.Get(ctx, rediskey.Leaderboard(redisDriver.gameID, variant)).Bytes()
	if errors.Is(err, redisv8.Nil) {
		return nil, nil
	}
	return data, err
}
