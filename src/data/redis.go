package data

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

const streamSearches = "scout.searches"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// PublishSearch appends a completed-search summary to the event stream so
// other services (bots, dashboards) can pick it up. Search results themselves
// are never stored.
func PublishSearch(ctx context.Context, rdb *redis.Client, payload map[string]interface{}) error {
	_, err := rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: streamSearches,
		Values: payload,
	}).Result()
	return err
}
