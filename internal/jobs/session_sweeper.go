package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultSweepInterval is how often stale session entries are purged
const DefaultSweepInterval = time.Hour

// Purger is a store that can drop entries not written within maxAge
type Purger interface {
	PurgeStale(ctx context.Context, maxAge time.Duration) (int64, error)
}

// SessionSweeper removes stored tokens whose session cookie has expired.
// Once the cookie is gone nothing can resume the session, so the entry is
// unreachable.
type SessionSweeper struct {
	store    Purger
	maxAge   time.Duration
	interval time.Duration
	ticker   *time.Ticker
	done     chan bool
	stopOnce sync.Once
}

func NewSessionSweeper(store Purger, maxAge, interval time.Duration) *SessionSweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &SessionSweeper{
		store:    store,
		maxAge:   maxAge,
		interval: interval,
		done:     make(chan bool),
	}
}

// Start begins the sweep background job
func (s *SessionSweeper) Start(ctx context.Context) {
	slog.Info("starting session sweeper", "interval", s.interval, "max_age", s.maxAge)

	// Run immediately on start
	s.Sweep(ctx)

	// Then run on interval
	s.ticker = time.NewTicker(s.interval)

	go func() {
		for {
			select {
			case <-s.ticker.C:
				s.Sweep(ctx)
			case <-ctx.Done():
				s.ticker.Stop()
				return
			case <-s.done:
				slog.Info("session sweeper stopped")
				return
			}
		}
	}()
}

// Stop stops the background job
func (s *SessionSweeper) Stop() {
	s.stopOnce.Do(func() {
		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.done)
	})
}

// Sweep runs one purge and returns how many entries were removed
func (s *SessionSweeper) Sweep(ctx context.Context) int64 {
	removed, err := s.store.PurgeStale(ctx, s.maxAge)
	if err != nil {
		slog.Error("failed to purge stale sessions", "error", err)
		return 0
	}
	if removed > 0 {
		slog.Info("purged stale sessions", "removed", removed)
	} else {
		slog.Debug("no stale sessions to purge")
	}
	return removed
}
