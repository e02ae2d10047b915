package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lumierefi/store_api/internal/store"
)

// SnapshotWorker flushes dirty session snapshots on a fixed interval.
// Handlers persist eagerly after each mutation; this loop is the backstop
// for sessions whose eager write failed or was skipped.
type SnapshotWorker struct {
	stores   *store.Manager
	interval time.Duration
}

// NewSnapshotWorker constructs a SnapshotWorker.
func NewSnapshotWorker(stores *store.Manager, interval time.Duration) *SnapshotWorker {
	return &SnapshotWorker{
		stores:   stores,
		interval: interval,
	}
}

// Start begins the flush loop and listens for context cancellation.
func (w *SnapshotWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting snapshot worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Snapshot worker stopped")
			return
		}
	}
}

func (w *SnapshotWorker) run(ctx context.Context) {
	if n := w.stores.PersistDirty(ctx); n > 0 {
		log.Debug().Int("flushed", n).Msg("Flushed dirty session snapshots")
	}
}
