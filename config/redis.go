package config

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
)

var Ctx = context.Background()

func ConnectRedis() (*redis.Client, error) {
	addr := GetEnvDefault("REDIS_ADDR", "localhost:6379")

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := client.Ping(Ctx).Err(); err != nil {
		return nil, fmt.Errorf("no se pudo conectar con Redis: %w", err)
	}

	return client, nil
}
