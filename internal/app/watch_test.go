package app_test

import (
	"context"
	"iter"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envy/internal/adapters/detector"
	"go.trai.ch/envy/internal/adapters/telemetry"
	"go.trai.ch/envy/internal/core/domain"
	"go.trai.ch/envy/internal/core/ports"
)

// chanWatcher is an in-memory ports.Watcher driven by the test.
type chanWatcher struct {
	events  chan ports.WatchEvent
	once    sync.Once
	started []string
}

func newChanWatcher() *chanWatcher {
	return &chanWatcher{events: make(chan ports.WatchEvent, 10)}
}

func (w *chanWatcher) Start(ctx context.Context, paths ...string) error {
	w.started = paths
	go func() {
		<-ctx.Done()
		_ = w.Stop()
	}()
	return nil
}

func (w *chanWatcher) Stop() error {
	w.once.Do(func() { close(w.events) })
	return nil
}

func (w *chanWatcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for ev := range w.events {
			if !yield(ev) {
				return
			}
		}
	}
}

func TestApp_Watch_ReprovisionsOnChange(t *testing.T) {
	w := newChanWatcher()
	a, m, settings := setupAppTest(t, telemetry.NewNoOpTracer(), w)
	a.WithEnvironment(detector.Environment{Mode: domain.RunModeDryRun, Interactive: true}).
		WithDebounceWindow(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m.expectProvision(t, settings, 2)

	var mu sync.Mutex
	readyCount := 0
	m.onInfo = func(msg string) {
		if msg != "environment ready" {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		readyCount++
		switch readyCount {
		case 1:
			// A burst of saves collapses into a single re-run.
			w.events <- ports.WatchEvent{Path: settings.Manifest, Operation: ports.OpWrite}
			w.events <- ports.WatchEvent{Path: settings.Manifest, Operation: ports.OpWrite}
			w.events <- ports.WatchEvent{Path: settings.Manifest, Operation: ports.OpRename}
		case 2:
			cancel()
		}
	}

	done := make(chan error, 1)
	go func() { done <- a.Watch(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}

	// The session mock has no expectations: watch mode never hands off.
	assert.Equal(t, []string{settings.Manifest}, w.started)
	mu.Lock()
	assert.Equal(t, 2, readyCount)
	mu.Unlock()
}
