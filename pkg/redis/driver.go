package redis

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Skyxo/killer/pkg/game"
	"github.com/Skyxo/killer/pkg/rediskey"
	"github.com/bsm/redislock"
	redisv8 "github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const DepartureLockMs = 5000
const LinearBackoffMs = 100
const MaxRetries = 30
const DefaultSessionTTL = time.Hour

var (
	ErrNoSession         = errors.New("no session found for that token")
	ErrDeparturesBusy    = errors.New("another departure is in progress, try again")
	ErrDepartureLockLost = errors.New("departure lock expired before the departure was saved")
)

type RedisParameters struct {
	Addr     string
	Username string
	Password string
	GameID   string
}

type Driver struct {
	client *redisv8.Client
	gameID string
}

func (redisDriver *Driver) Init(params interface{}) error {
	redisParams := params.(RedisParameters)
	rdb := redisv8.NewClient(&redisv8.Options{
		Addr:     redisParams.Addr,
		Username: redisParams.Username,
		Password: redisParams.Password,
		DB:       0, // use default DB
	})
	redisDriver.client = rdb
	redisDriver.gameID = redisParams.GameID
	return nil
}

func (redisDriver *Driver) Ping(ctx context.Context) error {
	return redisDriver.client.Ping(ctx).Err()
}

func (redisDriver *Driver) Close() error {
	return redisDriver.client.Close()
}

// CreateSession issues a new opaque token for the player, valid for ttl
func (redisDriver *Driver) CreateSession(ctx context.Context, playerID string, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	err := redisDriver.client.Set(ctx, rediskey.Session(redisDriver.gameID, token), playerID, ttl).Err()
	if err != nil {
		return "", err
	}
	redisDriver.touchSession(ctx, token)
	return token, nil
}

// GetSession returns the player behind a token and extends its lifetime by ttl
func (redisDriver *Driver) GetSession(ctx context.Context, token string, ttl time.Duration) (string, error) {
	if token == "" {
		return "", ErrNoSession
	}
	key := rediskey.Session(redisDriver.gameID, token)
	playerID, err := redisDriver.client.Get(ctx, key).Result()
	if errors.Is(err, redisv8.Nil) {
		return "", ErrNoSession
	} else if err != nil {
		return "", err
	}
	if err := redisDriver.client.Expire(ctx, key, ttl).Err(); err != nil {
		log.Println(err)
	}
	redisDriver.touchSession(ctx, token)
	return playerID, nil
}

func (redisDriver *Driver) DeleteSession(ctx context.Context, token string) error {
	err := redisDriver.client.Del(ctx, rediskey.Session(redisDriver.gameID, token)).Err()
	if err != nil {
		return err
	}
	return redisDriver.client.ZRem(ctx, rediskey.ActiveSessionsZSet(redisDriver.gameID), token).Err()
}

func (redisDriver *Driver) touchSession(ctx context.Context, token string) {
	err := redisDriver.client.ZAdd(ctx, rediskey.ActiveSessionsZSet(redisDriver.gameID), &redisv8.Z{
		Score:  float64(time.Now().Unix()),
		Member: token,
	}).Err()
	if err != nil {
		log.Println(err)
	}
}

// LockDepartures takes the game-wide departure lock so replicas sharing one database never interleave two
// graph repairs
func (redisDriver *Driver) LockDepartures(ctx context.Context) (game.Lease, error) {
	locker := redislock.New(redisDriver.client)
	lock, err := locker.Obtain(ctx, rediskey.DeparturesLock(redisDriver.gameID), time.Millisecond*DepartureLockMs, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(time.Millisecond*LinearBackoffMs), MaxRetries),
		Metadata:      "",
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrDeparturesBusy
	} else if err != nil {
		return nil, err
	}
	return &departureLease{lock: lock}, nil
}

type departureLease struct {
	lock *redislock.Lock
}

// Refresh extends the lock by a full TTL, or fails if it is no longer ours
func (l *departureLease) Refresh(ctx context.Context) error {
	err := l.lock.Refresh(ctx, time.Millisecond*DepartureLockMs, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return ErrDepartureLockLost
	}
	return err
}

func (l *departureLease) Release() {
	if err := l.lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
		log.Println("[Redis] releasing departure lock:", err)
	}
}
