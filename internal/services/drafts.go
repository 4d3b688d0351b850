package services

import (
	"context"
	"sync"

	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/models"
)

// DraftStore holds each user's in-progress plan in memory. The AutoSaver
// flushes dirty drafts to the database in the background; Snapshot hands the
// save loop a copy of what changed since the last flush.
type DraftStore struct {
	mu     sync.Mutex
	drafts map[int]*models.MealPlan
	dirty  map[int]bool

	saver *AutoSaver
}

func NewDraftStore() *DraftStore {
	return &DraftStore{
		drafts: make(map[int]*models.MealPlan),
		dirty:  make(map[int]bool),
	}
}

// AttachSaver wires the auto-save loop so Put can mark it dirty.
func (s *DraftStore) AttachSaver(saver *AutoSaver) {
	s.saver = saver
}

// Put replaces the user's draft and marks it for the next auto-save tick.
func (s *DraftStore) Put(userID int, plan *models.MealPlan) {
	s.mu.Lock()
	s.drafts[userID] = plan
	s.dirty[userID] = true
	s.mu.Unlock()

	if s.saver != nil {
		s.saver.MarkDirty()
	}
}

// Get returns the user's current draft, if any.
func (s *DraftStore) Get(userID int) (*models.MealPlan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan, ok := s.drafts[userID]
	return plan, ok
}

// Snapshot returns the dirty drafts and clears their dirty marks. If the
// subsequent save fails the caller re-marks them via Restore.
func (s *DraftStore) Snapshot() map[int]*models.MealPlan {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[int]*models.MealPlan, len(s.dirty))
	for userID := range s.dirty {
		out[userID] = s.drafts[userID]
	}
	s.dirty = make(map[int]bool)
	return out
}

// Restore re-marks drafts whose persistence failed so the next tick retries.
func (s *DraftStore) Restore(failed map[int]*models.MealPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID := range failed {
		s.dirty[userID] = true
	}
}

// DraftPersister is the save function the AutoSaver drives: it writes every
// dirty draft through the given upsert and restores the ones that failed.
func (s *DraftStore) DraftPersister(upsert func(ctx context.Context, userID int, plan *models.MealPlan) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		pending := s.Snapshot()
		failed := make(map[int]*models.MealPlan)

		var firstErr error
		for userID, plan := range pending {
			if err := upsert(ctx, userID, plan); err != nil {
				failed[userID] = plan
				if firstErr == nil {
					firstErr = err
				}
			}
		}

		if len(failed) > 0 {
			s.Restore(failed)
		}
		return firstErr
	}
}
