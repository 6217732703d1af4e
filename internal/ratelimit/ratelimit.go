package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Gate enforces a minimum time between successive calls to Wait.
// Concurrent callers wait until the interval has elapsed since the last
// admitted call, or return early if the context is canceled.
type Gate struct {
	Interval time.Duration

	mu   sync.Mutex
	last time.Time
}

func (g *Gate) Wait(ctx context.Context) error {
	if g.Interval <= 0 {
		return ctx.Err()
	}
	g.mu.Lock()
	wait := time.Until(g.last.Add(g.Interval))
	if wait <= 0 {
		g.last = time.Now()
		g.mu.Unlock()
		return nil
	}
	g.mu.Unlock()

	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
	}
	g.mu.Lock()
	g.last = time.Now()
	g.mu.Unlock()
	return nil
}
