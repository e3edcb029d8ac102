package database

import (
	"Backend-Student-Tracker/src/config"

	"github.com/hibiken/asynq"
)

// AsynqRedisOpt connection options shared by the asynq client and worker.
func AsynqRedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}
}

// NewAsynqClient initializes an Asynq client only if Redis is configured.
func NewAsynqClient(cfg config.RedisConfig) *asynq.Client {
	if !cfg.Enabled() {
		return nil
	}
	return asynq.NewClient(AsynqRedisOpt(cfg))
}
