package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Redis counts requests in fixed windows shared by every replica.
type Redis struct {
	rdb    goredis.Cmdable
	cfg    Config
	prefix string
	now    func() time.Time
}

func NewRedis(rdb goredis.Cmdable, cfg Config, prefix string) *Redis {
	prefix = strings.TrimRight(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		prefix = "cas:ratelimit"
	}
	return &Redis{rdb: rdb, cfg: cfg, prefix: prefix, now: time.Now}
}

func (r *Redis) Allow(ctx context.Context, key string) (Result, error) {
	if !r.cfg.enabled() {
		return Result{Allowed: true}, nil
	}
	now := r.now()
	window := r.cfg.Window
	slot := now.UnixNano() / int64(window)
	windowEnd := time.Unix(0, (slot+1)*int64(window))
	redisKey := fmt.Sprintf("%s:%s:%d", r.prefix, key, slot)

	var incr *goredis.IntCmd
	_, err := r.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		incr = p.Incr(ctx, redisKey)
		p.PExpire(ctx, redisKey, window)
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("rate limit incr: %w", err)
	}

	count := int(incr.Val())
	res := Result{Limit: r.cfg.Max}
	if count > r.cfg.Max {
		res.RetryAfter = windowEnd.Sub(now)
		return res, nil
	}
	res.Allowed = true
	res.Remaining = r.cfg.Max - count
	return res, nil
}
