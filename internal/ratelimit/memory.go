package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type memoryEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// Memory is a token bucket per key refilling Max tokens every Window.
type Memory struct {
	cfg Config
	now func() time.Time

	mu        sync.Mutex
	entries   map[string]*memoryEntry
	lastSweep time.Time
}

func NewMemory(cfg Config) *Memory {
	return &Memory{
		cfg:     cfg,
		now:     time.Now,
		entries: make(map[string]*memoryEntry),
	}
}

func (m *Memory) Allow(_ context.Context, key string) (Result, error) {
	if !m.cfg.enabled() {
		return Result{Allowed: true}, nil
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep(now)
	e, ok := m.entries[key]
	if !ok {
		every := m.cfg.Window / time.Duration(m.cfg.Max)
		e = &memoryEntry{lim: rate.NewLimiter(rate.Every(every), m.cfg.Max)}
		m.entries[key] = e
	}
	e.lastSeen = now

	res := Result{Limit: m.cfg.Max}
	r := e.lim.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		res.RetryAfter = delay
		return res, nil
	}
	res.Allowed = true
	res.Remaining = int(e.lim.TokensAt(now))
	return res, nil
}

// sweep drops keys idle for a full window; their buckets would be full again anyway.
func (m *Memory) sweep(now time.Time) {
	if now.Sub(m.lastSweep) < m.cfg.Window {
		return
	}
	m.lastSweep = now
	for k, e := range m.entries {
		if now.Sub(e.lastSeen) >= m.cfg.Window {
			delete(m.entries, k)
		}
	}
}

func (m *Memory) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
