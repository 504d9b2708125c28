package di

import (
	"context"
	"log/slog"

	"job_backend/internal/app/config"
	authusecase "job_backend/internal/feature/auth/usecase"
	"job_backend/internal/platform/denylist"
	infraredis "job_backend/internal/platform/redis"
)

// NewDenylist returns a Redis-backed denylist when Redis is configured and
// reachable, and an in-process one otherwise.
func NewDenylist(ctx context.Context, cfg *config.Config) (authusecase.TokenDenylist, Closer) {
	noop := func(context.Context) error { return nil }

	if !cfg.RedisEnabled() {
		slog.Info("REDIS_HOST not set; revoked tokens are kept in memory")
		return denylist.NewDenylistMemory(), noop
	}

	rdb, err := infraredis.NewRedisClient(ctx, infraredis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		slog.Warn("Redis unavailable; revoked tokens are kept in memory", "error", err)
		return denylist.NewDenylistMemory(), noop
	}
	return denylist.NewDenylistRedis(rdb, "denylist"), func(context.Context) error { return rdb.Close() }
}
