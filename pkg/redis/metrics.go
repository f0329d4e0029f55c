package redis

import (
	"context"
	"log"

	"github.com/Skyxo/killer/pkg/rediskey"
)

type EventType int

const (
	LoginRequest EventType = iota
	FailedLogin
	KillRequest
	ForfeitRequest
	RejectedRequest
	AdminRequest //must be the last metric
)

var MetricTypeStrings = []string{
	"login",
	"failed_login",
	"kill",
	"forfeit",
	"rejected",
	"admin", //must be the last request
}

func (e EventType) String() string {
	return MetricTypeStrings[e]
}

func (redisDriver *Driver) RecordRequest(requestType EventType) {
	redisDriver.IncrRequestType(requestType.String())
}

func (redisDriver *Driver) IncrRequestType(str string) {
	err := redisDriver.client.Incr(context.Background(), rediskey.RequestsByType(redisDriver.gameID, str)).Err()
	if err != nil {
		log.Println(err)
	}
}

func (redisDriver *Driver) GetRequestsByType(str string) (int64, error) {
	return redisDriver.client.Get(context.Background(), rediskey.RequestsByType(redisDriver.gameID, str)).Int64()
}
