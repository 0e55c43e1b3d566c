// Package room holds the authoritative in-memory membership table for the
// single translation room. All access goes through Store methods; membership
// mutation is fast and never overlaps a network call.
package room

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/models"
)

// ErrEmptyID is returned by Join when the participant id is missing.
var ErrEmptyID = errors.New("participant id required")

// DefaultName is used when a client joins without a display name.
const DefaultName = "Anonymous"

// Store is the membership table. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	members map[string]models.Participant
	now     func() time.Time
}

// NewStore creates an empty membership store.
func NewStore() *Store {
	return &Store{
		members: make(map[string]models.Participant),
		now:     time.Now,
	}
}

// Join inserts or replaces the member keyed by id and returns the stored
// record. A re-join keeps the original join time so roster ordering stays
// stable. Fails only on an empty id.
func (s *Store) Join(id, name, targetLanguage string) (models.Participant, error) {
	if id == "" {
		return models.Participant{}, ErrEmptyID
	}
	if name == "" {
		name = DefaultName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	joinedAt := s.now()
	if existing, ok := s.members[id]; ok {
		joinedAt = existing.JoinedAt
	}
	p := models.Participant{
		ID:             id,
		Name:           name,
		TargetLanguage: targetLanguage,
		JoinedAt:       joinedAt,
	}
	s.members[id] = p
	return p, nil
}

// Leave removes the member if present. Idempotent; reports whether a member
// was actually removed so callers broadcast at most once.
func (s *Store) Leave(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[id]; !ok {
		return false
	}
	delete(s.members, id)
	return true
}

// UpdateLanguage changes the stored member's target language. Updates for
// ids that are no longer members are silently skipped.
func (s *Store) UpdateLanguage(id, targetLanguage string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.members[id]
	if !ok {
		return false
	}
	p.TargetLanguage = targetLanguage
	s.members[id] = p
	return true
}

// Get returns the member with the given id.
func (s *Store) Get(id string) (models.Participant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.members[id]
	return p, ok
}

// Snapshot returns all members ordered by join time, then id. The ordering
// is total, so repeated snapshots of the same membership are identical.
func (s *Store) Snapshot() []models.Participant {
	s.mu.RLock()
	out := make([]models.Participant, 0, len(s.members))
	for _, p := range s.members {
		out = append(out, p)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].JoinedAt.Before(out[j].JoinedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// DistinctTargetLanguages returns the sorted set of target languages needed
// to serve every member except the one with excludeID, omitting excludeLang
// (the source language, which needs no translation).
func (s *Store) DistinctTargetLanguages(excludeID, excludeLang string) []string {
	s.mu.RLock()
	set := make(map[string]struct{})
	for id, p := range s.members {
		if id == excludeID || p.TargetLanguage == excludeLang || p.TargetLanguage == "" {
			continue
		}
		set[p.TargetLanguage] = struct{}{}
	}
	s.mu.RUnlock()

	out := make([]string, 0, len(set))
	for lang := range set {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// Len returns the current member count.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.members)
}
