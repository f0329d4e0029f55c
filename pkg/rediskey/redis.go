package rediskey

import (
	"context"
	"log"

	"github.com/go-redis/redis/v8"
)

func SetVersionAndCommit(ctx context.Context, client *redis.Client, version, commit string) {
	err := client.Set(ctx, Version, version, 0).Err()
	if err != nil {
		log.Println(err)
	}
	err = client.Set(ctx, Commit, commit, 0).Err()
	if err != nil {
		log.Println(err)
	}
}

func GetVersionAndCommit(ctx context.Context, client *redis.Client) (string, string) {
	v, err := client.Get(ctx, Version).Result()
	if err != nil {
		log.Println(err)
	}
	c, err := client.Get(ctx, Commit).Result()
	if err != nil {
		log.Println(err)
	}
	return v, c
}
