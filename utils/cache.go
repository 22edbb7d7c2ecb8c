// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"studiobook/config"

	"github.com/go-redis/redis/v8"
)

// TaskQueueClient is the Redis client backing the async task queue. The
// asynq server and client manage their own connections; this handle exists
// for health checks and ad-hoc inspection.
var TaskQueueClient *redis.Client

// InitTaskQueueCache initializes the Redis client for the task queue DB.
func InitTaskQueueCache() {
	TaskQueueClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisTaskDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := TaskQueueClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (task queue): %v", err)
	}
}

// GetTaskQueueClient returns the task queue Redis client.
func GetTaskQueueClient() *redis.Client {
	if TaskQueueClient == nil {
		InitTaskQueueCache()
	}
	return TaskQueueClient
}
