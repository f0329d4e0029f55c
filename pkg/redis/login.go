package redis

import (
	"context"
	"log"
	"time"

	"github.com/Skyxo/killer/pkg/rediskey"
)

const (
	MaxFailedLogins   = 5
	FailedLoginWindow = time.Minute * 5
)

// RecordFailedLogin counts a wrong password for playerID. The count expires FailedLoginWindow after the first miss.
func (redisDriver *Driver) RecordFailedLogin(ctx context.Context, playerID string) {
	key := rediskey.FailedLogins(redisDriver.gameID, playerID)
	count, err := redisDriver.client.Incr(ctx, key).Result()
	if err != nil {
		log.Println(err)
		return
	}
	// new counter
	if count < 2 {
		redisDriver.client.Expire(ctx, key, FailedLoginWindow)
	}
	if count == MaxFailedLogins {
		log.Printf("[Redis] locking logins of %s for %s\n", playerID, FailedLoginWindow)
	}
}

// IsLoginLocked is true once MaxFailedLogins wrong passwords were given within the window
func (redisDriver *Driver) IsLoginLocked(ctx context.Context, playerID string) bool {
	v, err := redisDriver.client.Get(ctx, rediskey.FailedLogins(redisDriver.gameID, playerID)).Int64()
	if err != nil {
		return false
	}
	return v >= MaxFailedLogins
}

func (redisDriver *Driver) ClearFailedLogins(ctx context.Context, playerID string) {
	if err := redisDriver.client.Del(ctx, rediskey.FailedLogins(redisDriver.gameID, playerID)).Err(); err != nil {
		log.Println(err)
	}
}
