package services_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/models"
	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/services"
)

func TestAutoSaverFlushesOncePerDirtyWindow(t *testing.T) {
	t.Parallel()

	var saves atomic.Int32
	saver := services.NewAutoSaver(10*time.Millisecond, func(ctx context.Context) error {
		saves.Add(1)
		return nil
	})
	defer saver.Stop()

	saver.MarkDirty()
	saver.MarkDirty()
	saver.MarkDirty()
	saver.Start(context.Background())

	time.Sleep(60 * time.Millisecond)
	if got := saves.Load(); got != 1 {
		t.Fatalf("saved %d times, want 1 (clean ticks must not fire)", got)
	}

	// New changes trigger exactly one more flush.
	saver.MarkDirty()
	time.Sleep(60 * time.Millisecond)
	if got := saves.Load(); got != 2 {
		t.Fatalf("saved %d times, want 2", got)
	}
}

func TestAutoSaverNeverOverlapsSaves(t *testing.T) {
	t.Parallel()

	var inFlight atomic.Int32
	var overlapped atomic.Bool

	saver := services.NewAutoSaver(5*time.Millisecond, func(ctx context.Context) error {
		if inFlight.Add(1) > 1 {
			overlapped.Store(true)
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		return nil
	})
	defer saver.Stop()
	saver.Start(context.Background())

	done := time.After(150 * time.Millisecond)
	for {
		select {
		case <-done:
			if overlapped.Load() {
				t.Fatalf("saves overlapped")
			}
			return
		default:
			saver.MarkDirty()
			time.Sleep(time.Millisecond)
		}
	}
}

func TestAutoSaverRetriesFailedSave(t *testing.T) {
	t.Parallel()

	var saves atomic.Int32
	saver := services.NewAutoSaver(10*time.Millisecond, func(ctx context.Context) error {
		if saves.Add(1) == 1 {
			return errors.New("db down")
		}
		return nil
	})
	defer saver.Stop()

	saver.MarkDirty()
	saver.Start(context.Background())

	time.Sleep(60 * time.Millisecond)
	// Failure keeps the dirty flag set, so the next tick retries; success
	// clears it and the loop goes quiet.
	if got := saves.Load(); got != 2 {
		t.Fatalf("saved %d times, want 2 (one failure, one retry)", got)
	}
}

func TestAutoSaverFlushSkipsWhenClean(t *testing.T) {
	t.Parallel()

	var saves atomic.Int32
	saver := services.NewAutoSaver(time.Hour, func(ctx context.Context) error {
		saves.Add(1)
		return nil
	})
	defer saver.Stop()

	saver.Flush(context.Background())
	if saves.Load() != 0 {
		t.Fatalf("clean flush invoked save")
	}

	saver.MarkDirty()
	saver.Flush(context.Background())
	if saves.Load() != 1 {
		t.Fatalf("dirty flush did not invoke save")
	}
}

func TestAutoSaverStopIsIdempotent(t *testing.T) {
	t.Parallel()

	saver := services.NewAutoSaver(time.Millisecond, func(ctx context.Context) error { return nil })
	saver.Start(context.Background())
	saver.Stop()
	saver.Stop()
}

func draftPlan(kcal int) *models.MealPlan {
	return &models.MealPlan{
		TargetCalories: kcal,
		PlanType:       models.PlanDaily,
		Days:           map[string]models.DayPlan{},
	}
}

func TestDraftStorePutGet(t *testing.T) {
	t.Parallel()

	store := services.NewDraftStore()
	if _, ok := store.Get(1); ok {
		t.Fatalf("empty store returned a draft")
	}

	store.Put(1, draftPlan(2000))
	plan, ok := store.Get(1)
	if !ok || plan.TargetCalories != 2000 {
		t.Fatalf("draft not stored: %v %v", plan, ok)
	}

	// Put replaces wholesale.
	store.Put(1, draftPlan(2400))
	plan, _ = store.Get(1)
	if plan.TargetCalories != 2400 {
		t.Fatalf("draft not replaced: %d", plan.TargetCalories)
	}
}

func TestDraftStoreSnapshotClearsDirty(t *testing.T) {
	t.Parallel()

	store := services.NewDraftStore()
	store.Put(1, draftPlan(2000))
	store.Put(2, draftPlan(1800))

	first := store.Snapshot()
	if len(first) != 2 {
		t.Fatalf("snapshot has %d drafts, want 2", len(first))
	}

	second := store.Snapshot()
	if len(second) != 0 {
		t.Fatalf("second snapshot not empty: %d drafts", len(second))
	}

	// Drafts stay readable after a snapshot; only the dirty marks clear.
	if _, ok := store.Get(1); !ok {
		t.Fatalf("draft dropped by snapshot")
	}
}

func TestDraftPersisterRetriesFailedUsers(t *testing.T) {
	t.Parallel()

	store := services.NewDraftStore()
	store.Put(1, draftPlan(2000))
	store.Put(2, draftPlan(1800))

	var attempts atomic.Int32
	persist := store.DraftPersister(func(ctx context.Context, userID int, plan *models.MealPlan) error {
		attempts.Add(1)
		if userID == 2 && attempts.Load() <= 2 {
			return errors.New("db down")
		}
		return nil
	})

	if err := persist(context.Background()); err == nil {
		t.Fatalf("expected first pass to report the failed upsert")
	}

	// Only the failed user is dirty again; the retry pass saves just that one.
	pending := store.Snapshot()
	if len(pending) != 1 {
		t.Fatalf("retry snapshot has %d drafts, want 1", len(pending))
	}
	if _, ok := pending[2]; !ok {
		t.Fatalf("failed user not re-marked: %v", pending)
	}
}
