// Package store is the single owned application state. Every field is
// mirrored to a key in kv.Storage; command methods validate, write the
// affected keys and only then commit the new state in memory.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/existflow/flownote/internal/kv"
	"github.com/existflow/flownote/internal/logger"
	"github.com/existflow/flownote/internal/model"
)

// Store holds the state of one user.
type Store struct {
	mu       sync.Mutex
	kv       kv.Storage
	now      func() time.Time
	statuses []string

	profile    model.Profile
	settings   model.Settings
	notes      []model.Note
	journals   []model.Journal
	habits     []model.Habit
	events     []model.CalendarEvent
	ownedSkins []string
	activeSkin string
	tasks      []model.Task
	projects   []model.Project
	claimed    []string
	sessions   []model.TimerSession
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithTaskStatuses replaces the default task status set. The first status is
// given to new tasks.
func WithTaskStatuses(statuses []string) Option {
	return func(s *Store) {
		if len(statuses) > 0 {
			s.statuses = append([]string(nil), statuses...)
		}
	}
}

// New loads every key from storage. Missing or unreadable keys start from
// their defaults.
func New(ctx context.Context, storage kv.Storage, opts ...Option) (*Store, error) {
	if storage == nil {
		return nil, errors.New("store: nil storage")
	}
	s := &Store{
		kv:       storage,
		now:      time.Now,
		statuses: append([]string(nil), model.DefaultTaskStatuses...),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.profile = load(ctx, storage, kv.KeyProfile, model.Profile{Name: "Guest"})
	s.settings = load(ctx, storage, kv.KeySettings, model.DefaultSettings())
	s.notes = load(ctx, storage, kv.KeyNotes, []model.Note{})
	s.journals = load(ctx, storage, kv.KeyJournals, []model.Journal{})
	s.habits = load(ctx, storage, kv.KeyHabits, model.DefaultHabits())
	s.events = load(ctx, storage, kv.KeyCalendarEvents, []model.CalendarEvent{})
	s.ownedSkins = load(ctx, storage, kv.KeyOwnedSkins, []string{model.DefaultSkin})
	s.activeSkin = load(ctx, storage, kv.KeyActiveSkin, model.DefaultSkin)
	s.tasks = load(ctx, storage, kv.KeyTasks, []model.Task{})
	s.projects = load(ctx, storage, kv.KeyProjects, []model.Project{})
	s.claimed = load(ctx, storage, kv.KeyClaimedRewards, []string{})
	s.sessions = load(ctx, storage, kv.KeySessions, []model.TimerSession{})

	for i := range s.habits {
		if s.habits[i].Completions == nil {
			s.habits[i].Completions = map[string]bool{}
		}
	}

	logger.Debug("Store loaded",
		logger.F("habits", len(s.habits)),
		logger.F("events", len(s.events)),
		logger.F("tasks", len(s.tasks)),
	)
	return s, nil
}

func load[T any](ctx context.Context, storage kv.Storage, key string, def T) T {
	raw, err := storage.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return def
	}
	if err != nil {
		logger.Warn("Failed to read key, using default", logger.F("key", key), logger.F("error", err))
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.Warn("Failed to decode key, using default", logger.F("key", key), logger.F("error", err))
		return def
	}
	return v
}

// change is one key write: next is persisted, prev restores the key if a
// later write of the same command fails.
type change struct {
	key  string
	next any
	prev any
}

func (s *Store) persist(ctx context.Context, changes ...change) error {
	encoded := make([][]byte, len(changes))
	for i, c := range changes {
		b, err := json.Marshal(c.next)
		if err != nil {
			return fmt.Errorf("encode %s: %w", c.key, err)
		}
		encoded[i] = b
	}

	for i, c := range changes {
		if err := s.kv.Set(ctx, c.key, encoded[i]); err != nil {
			s.rollback(ctx, changes[:i])
			return fmt.Errorf("save %s: %w", c.key, err)
		}
	}
	return nil
}

func (s *Store) rollback(ctx context.Context, written []change) {
	ctx = context.WithoutCancel(ctx)
	for _, c := range written {
		b, err := json.Marshal(c.prev)
		if err == nil {
			err = s.kv.Set(ctx, c.key, b)
		}
		if err != nil {
			logger.Error("Failed to restore key", logger.F("key", c.key), logger.F("error", err))
		}
	}
}

func (s *Store) nowMillis() int64 {
	return s.now().UnixMilli()
}

// Now returns the store clock.
func (s *Store) Now() time.Time {
	return s.now()
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", model.ErrInvalid, msg)
}

func notFound(what, id string) error {
	return fmt.Errorf("%s %q: %w", what, id, model.ErrNotFound)
}

func parseDate(date string) error {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return invalid(fmt.Sprintf("date %q must be YYYY-MM-DD", date))
	}
	return nil
}
