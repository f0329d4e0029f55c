package redis

import (
	"context"

	"github.com/Skyxo/killer/pkg/rediskey"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ActiveSessionSeconds is how recently a session must have been used to count as active
const ActiveSessionSeconds = 15 * 60

type Info struct {
	Version         string `json:"version"`
	Commit          string `json:"commit"`
	TotalPlayers    int64  `json:"totalPlayers"`
	TotalDepartures int64  `json:"totalDepartures"`
	ActiveSessions  int64  `json:"activeSessions"`
}

// GetInfo reads the cached totals, refreshing them from Postgres when they expired. pool may be nil.
func (redisDriver *Driver) GetInfo(ctx context.Context, pool *pgxpool.Pool) Info {
	c := redisDriver.client
	version, commit := rediskey.GetVersionAndCommit(ctx, c)

	totalPlayers := rediskey.GetTotalPlayers(ctx, c, redisDriver.gameID)
	if totalPlayers == rediskey.NotFound && pool != nil {
		totalPlayers = rediskey.RefreshTotalPlayers(ctx, c, pool, redisDriver.gameID)
	}
	totalDepartures := rediskey.GetTotalDepartures(ctx, c, redisDriver.gameID)
	if totalDepartures == rediskey.NotFound && pool != nil {
		totalDepartures = rediskey.RefreshTotalDepartures(ctx, c, pool, redisDriver.gameID)
	}
	return Info{
		Version:         version,
		Commit:          commit,
		TotalPlayers:    totalPlayers,
		TotalDepartures: totalDepartures,
		ActiveSessions:  rediskey.GetActiveSessions(ctx, c, redisDriver.gameID, ActiveSessionSeconds),
	}
}

func (redisDriver *Driver) SetVersionAndCommit(ctx context.Context, version, commit string) {
	rediskey.SetVersionAndCommit(ctx, redisDriver.client, version, commit)
}
