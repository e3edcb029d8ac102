package database

import (
	"context"
	"fmt"

	"Backend-Student-Tracker/src/config"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis สร้าง client และ ping; returns nil, nil when Redis is not configured.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr, // เช่น localhost:6379
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect Redis: %w", err)
	}
	return client, nil
}
