// Package worker holds background loops that run for the life of the
// process.
package worker

import (
	"context"
	"time"

	"github.com/alpengrip/cruxsync/internal/logger"
	"github.com/alpengrip/cruxsync/internal/services"
)

// EvictionWorker periodically applies the cache eviction policy.
type EvictionWorker struct {
	eviction  *services.EvictionService
	interval  time.Duration
	retention time.Duration
	done      chan struct{}
	stopped   chan struct{}
}

func NewEvictionWorker(eviction *services.EvictionService, interval, retention time.Duration) *EvictionWorker {
	return &EvictionWorker{
		eviction:  eviction,
		interval:  interval,
		retention: retention,
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
}

// Start runs the eviction loop until Stop is called.
func (w *EvictionWorker) Start(ctx context.Context) {
	go func() {
		defer close(w.stopped)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := w.eviction.EvictStale(ctx, w.retention); err != nil {
					logger.FromContext(ctx).Error("eviction run failed", "error", err)
				}
			case <-w.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop halts the loop and waits for an in-flight run to finish.
func (w *EvictionWorker) Stop() {
	close(w.done)
	<-w.stopped
}
