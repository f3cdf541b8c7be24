package store

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/existflow/flownote/internal/kv"
	"github.com/existflow/flownote/internal/model"
)

// TimerSessions returns the recorded focus sessions, oldest first.
func (s *Store) TimerSessions() []model.TimerSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.sessions)
}

// RecordTimerSession appends a finished focus session.
func (s *Store) RecordTimerSession(ctx context.Context, sess model.TimerSession) error {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := append(slices.Clone(s.sessions), sess)
	if err := s.persist(ctx, change{kv.KeySessions, next, s.sessions}); err != nil {
		return err
	}
	s.sessions = next
	return nil
}
