package app

import (
	"context"
	"fmt"

	"github.com/five82/pokedex/internal/catalog"
	"github.com/five82/pokedex/internal/config"
	"github.com/five82/pokedex/internal/prefs"
	"github.com/five82/pokedex/internal/server"
	"github.com/five82/pokedex/internal/state"
	"github.com/five82/pokedex/internal/ui"
)

var (
	_ ui.DetailLoader     = (*catalog.Loader)(nil)
	_ server.DetailLoader = (*catalog.Loader)(nil)
)

// Options configure the interactive application.
type Options struct {
	Config    config.Config
	PrefsPath string // empty uses default ~/.config/pokedex/prefs.toml
}

// Run boots the TUI until the user quits or the context is cancelled. The
// catalog load starts in the background before the first frame is drawn.
func Run(ctx context.Context, opts Options) error {
	rt, err := NewRuntime(opts.Config)
	if err != nil {
		return err
	}
	defer rt.Close()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		rt.Logger.Warn("prefs unreadable, using defaults", "error", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	StartLoader(ctx, rt.Store, rt.Loader, rt.Logger)

	return ui.Run(ui.Options{
		Context:     ctx,
		Store:       rt.Store,
		Details:     rt.Loader,
		Logger:      rt.Logger,
		LogPath:     rt.Config.LogFile,
		RefreshTick: rt.Config.RefreshInterval,
		ThemeName:   userPrefs.Theme,
		PrefsPath:   opts.PrefsPath,
	})
}

// WaitCatalog runs the catalog load to completion and returns the resulting
// snapshot. A failed load is returned as an error.
func WaitCatalog(ctx context.Context, rt *Runtime) (state.Snapshot, error) {
	done := StartLoader(ctx, rt.Store, rt.Loader, rt.Logger)
	select {
	case <-done:
	case <-ctx.Done():
		return state.Snapshot{}, ctx.Err()
	}

	snap := rt.Store.Snapshot()
	if err := snap.Catalog.Err(); err != nil {
		return snap, fmt.Errorf("load catalog: %w", err)
	}
	return snap, nil
}

// Serve starts the catalog load and serves the JSON API on addr until the
// context is cancelled.
func Serve(ctx context.Context, rt *Runtime, addr string) error {
	if addr == "" {
		addr = rt.Config.Server.Addr
	}
	StartLoader(ctx, rt.Store, rt.Loader, rt.Logger)
	return server.New(rt.Store, rt.Loader, rt.Logger).ListenAndServe(ctx, addr)
}
