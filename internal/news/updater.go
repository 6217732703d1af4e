package news

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"stockboard/internal/ratelimit"
	"stockboard/internal/registry"
)

// HeadlineFetcher is the updater's view of the search client.
type HeadlineFetcher interface {
	FetchHeadline(ctx context.Context, query string) (Entry, error)
}

// UpdaterConfig controls the refresh cadence.
type UpdaterConfig struct {
	FetchInterval time.Duration // throttle between instruments within a pass
	PassInterval  time.Duration // sleep between full passes
}

// Updater is the background loop that keeps the cache warm. It walks the
// watch-list in a fresh random order each pass, spreading request timing so
// restarts don't hammer the upstream in the same sequence. Individual fetch
// failures leave the existing entry untouched; nothing short of context
// cancellation stops the loop.
type Updater struct {
	fetcher     HeadlineFetcher
	cache       *Cache
	instruments []registry.Instrument
	gate        *ratelimit.Gate
	passDelay   time.Duration
	log         *zap.Logger
}

func NewUpdater(cfg UpdaterConfig, fetcher HeadlineFetcher, cache *Cache, instruments []registry.Instrument, log *zap.Logger) *Updater {
	if cfg.FetchInterval <= 0 {
		cfg.FetchInterval = 3 * time.Second
	}
	if cfg.PassInterval <= 0 {
		cfg.PassInterval = 1200 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Updater{
		fetcher:     fetcher,
		cache:       cache,
		instruments: instruments,
		gate:        &ratelimit.Gate{Interval: cfg.FetchInterval},
		passDelay:   cfg.PassInterval,
		log:         log,
	}
}

// Run loops until ctx is canceled. Start it once, at process startup.
func (u *Updater) Run(ctx context.Context) {
	u.log.Info("news updater started", zap.Int("instruments", len(u.instruments)))
	for {
		u.pass(ctx)
		if ctx.Err() != nil {
			u.log.Info("news updater stopped")
			return
		}
		select {
		case <-ctx.Done():
			u.log.Info("news updater stopped")
			return
		case <-time.After(u.passDelay):
		}
	}
}

// pass fetches one headline per instrument in random order. A panic inside a
// single iteration (a broken feed tripping the parser, say) aborts only that
// pass.
func (u *Updater) pass(ctx context.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			u.log.Error("news pass panicked", zap.Any("panic", rec))
		}
	}()

	order := rand.Perm(len(u.instruments))
	for _, i := range order {
		inst := u.instruments[i]
		if err := u.gate.Wait(ctx); err != nil {
			return
		}
		entry, err := u.fetcher.FetchHeadline(ctx, inst.Query)
		if err != nil {
			// keep whatever was cached before
			u.log.Debug("headline fetch failed", zap.String("id", inst.ID), zap.Error(err))
			continue
		}
		u.cache.Set(inst.ID, entry)
	}
	u.log.Info("news pass complete", zap.Int("cached", u.cache.Len()))
}
