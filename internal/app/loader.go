package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/five82/pokedex/internal/catalog"
	"github.com/five82/pokedex/internal/state"
)

// StartLoader launches the one-shot catalog load in a background goroutine
// and returns immediately. The returned channel is closed once the store
// holds the outcome.
func StartLoader(ctx context.Context, store *state.Store, loader *catalog.Loader, logger *slog.Logger) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = loadCatalog(ctx, store, loader, logger)
	}()
	return done
}

// loadCatalog runs a full load and records it in store. A failure is logged
// once and leaves the store Failed with an empty collection; it is returned
// only for callers that want it.
func loadCatalog(ctx context.Context, store *state.Store, loader *catalog.Loader, logger *slog.Logger) error {
	loadID := uuid.NewString()
	log := logger.With("load_id", loadID)

	store.Begin(loadID)
	log.Debug("catalog load started", "concurrency", loader.Concurrency())

	start := time.Now()
	entries, err := loader.Load(ctx)
	if err != nil {
		store.Finish(nil, err)
		log.Error("catalog load failed", "error", err, "elapsed", time.Since(start))
		return err
	}

	store.Finish(entries, nil)
	log.Info("catalog loaded", "entries", len(entries), "elapsed", time.Since(start))
	return nil
}
