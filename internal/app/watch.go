package app

import (
	"context"
	"time"

	"go.trai.ch/envy/internal/adapters/watcher"
	"golang.org/x/sync/errgroup"
)

const defaultDebounceWindow = watcher.DefaultDebounceWindow

// Watch provisions once, then again every time the manifest changes.
// Runs never overlap: file events only mark a run as pending.
// It returns when ctx is cancelled.
func (a *App) Watch(ctx context.Context) error {
	settings, err := a.loadSettings()
	if err != nil {
		return err
	}

	// Watch mode never opens a session.
	settings.Interactive = false
	mode := a.detect().Mode

	shutdown := a.setupTelemetry()
	defer shutdown()

	if err := a.watcher.Start(ctx, settings.Manifest); err != nil {
		return err
	}

	pending := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(a.debounceWindow, func([]string) {
		select {
		case pending <- struct{}{}:
		default:
		}
	})

	provision := func() {
		if _, err := a.pipeline.Provision(ctx, settings, mode); err != nil {
			if ctx.Err() != nil {
				return
			}
			a.logger.Error(err)
			return
		}
		a.logger.Info("environment ready")
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for event := range a.watcher.Events() {
			a.logger.Debug("changed: " + event.Path)
			debouncer.Add(event.Path)
		}
		return nil
	})

	g.Go(func() error {
		defer debouncer.Stop()
		defer func() { _ = a.watcher.Stop() }()

		provision()
		a.logger.Info("watching " + settings.Rel(settings.Manifest) + " for changes")

		for {
			select {
			case <-gctx.Done():
				return nil
			case <-pending:
				provision()
			}
		}
	})

	return g.Wait()
}

// WithDebounceWindow overrides how long file events are coalesced.
func (a *App) WithDebounceWindow(window time.Duration) *App {
	a.debounceWindow = window
	return a
}
