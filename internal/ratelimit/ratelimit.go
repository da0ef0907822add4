// Package ratelimit decides whether a caller may make another request in the current
// window. Memory keeps state per process; Redis shares it across replicas.
package ratelimit

import (
	"context"
	"time"
)

// Result describes one admission decision.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// Config is the request budget per key.
type Config struct {
	Max    int
	Window time.Duration
}

func (c Config) enabled() bool { return c.Max > 0 && c.Window > 0 }

// Unlimited admits everything.
type Unlimited struct{}

func (Unlimited) Allow(context.Context, string) (Result, error) {
	return Result{Allowed: true}, nil
}
