package store

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/existflow/flownote/internal/kv"
	"github.com/existflow/flownote/internal/model"
	"github.com/existflow/flownote/internal/streak"
)

func cloneHabits(habits []model.Habit) []model.Habit {
	out := make([]model.Habit, len(habits))
	for i, h := range habits {
		h.Completions = maps.Clone(h.Completions)
		if h.Completions == nil {
			h.Completions = map[string]bool{}
		}
		out[i] = h
	}
	return out
}

// Habits returns a copy of the habit list.
func (s *Store) Habits() []model.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneHabits(s.habits)
}

func (s *Store) habitIndex(id string) int {
	return slices.IndexFunc(s.habits, func(h model.Habit) bool { return h.ID == id })
}

func (s *Store) saveHabits(ctx context.Context, next []model.Habit) error {
	if err := s.persist(ctx, change{kv.KeyHabits, next, s.habits}); err != nil {
		return err
	}
	s.habits = next
	return nil
}

// AddHabit creates a habit with no completions.
func (s *Store) AddHabit(ctx context.Context, name string) (model.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Habit{}, invalid("habit name is required")
	}
	h := model.Habit{
		ID:          uuid.NewString(),
		Name:        name,
		Completions: map[string]bool{},
		CreatedAt:   s.nowMillis(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := append(cloneHabits(s.habits), h)
	if err := s.saveHabits(ctx, next); err != nil {
		return model.Habit{}, err
	}
	return h, nil
}

// RenameHabit changes the name of a habit.
func (s *Store) RenameHabit(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("habit name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.habitIndex(id)
	if i < 0 {
		return notFound("habit", id)
	}
	next := cloneHabits(s.habits)
	next[i].Name = name
	return s.saveHabits(ctx, next)
}

// DeleteHabit removes a habit and its history.
func (s *Store) DeleteHabit(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.habitIndex(id)
	if i < 0 {
		return notFound("habit", id)
	}
	next := slices.Delete(cloneHabits(s.habits), i, i+1)
	return s.saveHabits(ctx, next)
}

// ToggleHabit flips the completion of habit id on date and returns the new value.
func (s *Store) ToggleHabit(ctx context.Context, id, date string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.habitIndex(id)
	if i < 0 {
		return false, notFound("habit", id)
	}
	done := !s.habits[i].Done(date)
	if err := s.setCompletion(ctx, i, date, done); err != nil {
		return false, err
	}
	return done, nil
}

// SetHabitCompletion marks habit id done or not done on date.
func (s *Store) SetHabitCompletion(ctx context.Context, id, date string, done bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.habitIndex(id)
	if i < 0 {
		return notFound("habit", id)
	}
	return s.setCompletion(ctx, i, date, done)
}

// setCompletion stores false as an absent key.
func (s *Store) setCompletion(ctx context.Context, i int, date string, done bool) error {
	if err := parseDate(date); err != nil {
		return err
	}
	next := cloneHabits(s.habits)
	if done {
		next[i].Completions[date] = true
	} else {
		delete(next[i].Completions, date)
	}
	return s.saveHabits(ctx, next)
}

// Streak computes the streak statistics for the window ending today.
func (s *Store) Streak(period streak.Period) streak.Stats {
	return streak.Compute(s.Habits(), period, s.now())
}
