package rediskey

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v4/pgxpool"
)

const TotalsExpiration = time.Minute * 5

const NotFound = -1

func GetTotalPlayers(ctx context.Context, client *redis.Client, gameID string) int64 {
	v, err := client.Get(ctx, TotalPlayers(gameID)).Int64()
	if err == nil {
		return v
	}
	return NotFound
}

func RefreshTotalPlayers(ctx context.Context, client *redis.Client, pool *pgxpool.Pool, gameID string) int64 {
	return refresh(ctx, client, TotalPlayers(gameID), queryTotalPlayers(ctx, pool))
}

func GetTotalDepartures(ctx context.Context, client *redis.Client, gameID string) int64 {
	v, err := client.Get(ctx, TotalDepartures(gameID)).Int64()
	if err == nil {
		return v
	}
	return NotFound
}

func RefreshTotalDepartures(ctx context.Context, client *redis.Client, pool *pgxpool.Pool, gameID string) int64 {
	return refresh(ctx, client, TotalDepartures(gameID), queryTotalDepartures(ctx, pool))
}

func refresh(ctx context.Context, client *redis.Client, key string, v int64) int64 {
	if v != NotFound {
		err := client.Set(ctx, key, v, TotalsExpiration).Err()
		if err != nil {
			log.Println(err)
		}
	}
	return v
}

// GetActiveSessions counts the sessions used within the last secs seconds
func GetActiveSessions(ctx context.Context, client *redis.Client, gameID string, secs int64) int64 {
	now := time.Now()
	before := now.Add(-(time.Second * time.Duration(secs)))
	count, err := client.ZCount(ctx, ActiveSessionsZSet(gameID), fmt.Sprintf("%d", before.Unix()), fmt.Sprintf("%d", now.Unix())).Result()
	if err != nil {
		log.Println(err)
		return 0
	}
	return count
}
