package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	casredis "github.com/yungbote/cas-backend/internal/clients/redis"
	"github.com/yungbote/cas-backend/internal/config"
	"github.com/yungbote/cas-backend/internal/llm"
	"github.com/yungbote/cas-backend/internal/observability"
	"github.com/yungbote/cas-backend/internal/platform/logger"
	"github.com/yungbote/cas-backend/internal/ratelimit"
)

type Clients struct {
	Metrics *observability.Metrics
	Redis   *goredis.Client
	Limiter ratelimit.Limiter
	LLM     *llm.Client
}

func wireClients(ctx context.Context, log *logger.Logger, cfg *config.Config) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients

	if cfg.Metrics.Enabled {
		out.Metrics = observability.NewMetrics(cfg.Metrics.Namespace, prometheus.NewRegistry())
	}

	rl := ratelimit.Config{Max: cfg.RateLimit.Max, Window: cfg.RateLimit.Window.Duration}
	switch {
	case rl.Max <= 0:
		out.Limiter = ratelimit.Unlimited{}
	case cfg.RateLimit.RedisAddr != "":
		rdb, err := casredis.NewClient(ctx, log, cfg.RateLimit.RedisAddr)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis rate limiter: %w", err)
		}
		out.Redis = rdb
		out.Limiter = ratelimit.NewRedis(rdb, rl, cfg.RateLimit.RedisPrefix)
	default:
		out.Limiter = ratelimit.NewMemory(rl)
	}

	client, err := llm.New(cfg.LLM, log, out.Metrics)
	if err != nil {
		_ = out.Close()
		return Clients{}, fmt.Errorf("init llm client: %w", err)
	}
	out.LLM = client
	return out, nil
}

func (c Clients) Close() error {
	if c.Redis != nil {
		return c.Redis.Close()
	}
	return nil
}
