package services

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// AutoSaver runs a periodic save while unsaved changes exist. A tick only
// fires the save when the dirty flag is set, and an in-flight guard ensures
// a slow save is never overlapped by the next tick: ticks arriving during a
// save are skipped, not queued. Stop halts the loop on teardown.
type AutoSaver struct {
	interval time.Duration
	save     func(ctx context.Context) error

	dirty    atomic.Bool
	inFlight atomic.Bool

	stop     chan struct{}
	stopOnce sync.Once
}

// NewAutoSaver creates a saver that invokes save at most once per interval.
func NewAutoSaver(interval time.Duration, save func(ctx context.Context) error) *AutoSaver {
	return &AutoSaver{
		interval: interval,
		save:     save,
		stop:     make(chan struct{}),
	}
}

// MarkDirty flags unsaved changes. Calling it repeatedly between ticks does
// not cause extra saves; the next tick flushes once.
func (a *AutoSaver) MarkDirty() {
	a.dirty.Store(true)
}

// Start launches the save loop. It returns immediately; the loop runs until
// Stop is called or the context is cancelled.
func (a *AutoSaver) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(a.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				a.flush(ctx)
			case <-a.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Flush saves immediately if there are unsaved changes. Used on explicit
// save actions so the timer can be skipped without waiting a full interval.
func (a *AutoSaver) Flush(ctx context.Context) {
	a.flush(ctx)
}

func (a *AutoSaver) flush(ctx context.Context) {
	if !a.dirty.Load() {
		return
	}
	if !a.inFlight.CompareAndSwap(false, true) {
		return
	}
	defer a.inFlight.Store(false)

	a.dirty.Store(false)
	if err := a.save(ctx); err != nil {
		log.Printf("autosave failed: %v", err)
		// Keep the changes pending so the next tick retries.
		a.dirty.Store(true)
	}
}

// Stop halts the loop. Safe to call more than once.
func (a *AutoSaver) Stop() {
	a.stopOnce.Do(func() {
		close(a.stop)
	})
}
