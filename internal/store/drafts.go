package store

import (
	"sync"
	"time"

	"stockroom/internal/models"
)

// DraftStore holds in-progress order drafts keyed by draft id. Drafts are
// throwaway session state; a missing id simply reads as an empty draft.
type DraftStore struct {
	mu     sync.RWMutex
	drafts map[string]models.Draft
}

// NewDraftStore creates an empty draft store
func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: make(map[string]models.Draft)}
}

// Get returns the draft for the id, or a fresh empty draft when none exists
func (s *DraftStore) Get(id string) models.Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drafts[id]
	if !ok {
		return models.Draft{ID: id}
	}
	return cloneDraft(d)
}

// Put stores the draft under its id, stamping timestamps
func (s *DraftStore) Put(d models.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now
	s.drafts[d.ID] = cloneDraft(d)
}

// Delete removes the draft
func (s *DraftStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
}

func cloneDraft(d models.Draft) models.Draft {
	lines := make([]models.DraftLine, len(d.Lines))
	copy(lines, d.Lines)
	d.Lines = lines
	return d
}
