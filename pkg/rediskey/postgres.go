package rediskey

import (
	"context"

	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgx/v4/pgxpool"
)

func queryTotalPlayers(ctx context.Context, pool *pgxpool.Pool) int64 {
	var r []int64
	err := pgxscan.Select(ctx, pool, &r, "SELECT COUNT(*) FROM players WHERE is_admin = false")
	if err != nil || len(r) < 1 {
		return NotFound
	}
	return r[0]
}

func queryTotalDepartures(ctx context.Context, pool *pgxpool.Pool) int64 {
	var r []int64
	err := pgxscan.Select(ctx, pool, &r, "SELECT COUNT(*) FROM departures")
	if err != nil || len(r) < 1 {
		return NotFound
	}
	return r[0]
}
