package store

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/existflow/flownote/internal/calendar"
	"github.com/existflow/flownote/internal/kv"
	"github.com/existflow/flownote/internal/logger"
	"github.com/existflow/flownote/internal/model"
)

// CalendarEvents returns all events in insertion order.
func (s *Store) CalendarEvents() []model.CalendarEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.events)
}

// EventsForDay returns the events starting on day.
func (s *Store) EventsForDay(day time.Time) []model.CalendarEvent {
	return calendar.EventsForDay(s.CalendarEvents(), day)
}

func validateEvent(e model.CalendarEvent) error {
	if strings.TrimSpace(e.Title) == "" {
		return invalid("event title is required")
	}
	if e.EndTime <= e.StartTime {
		return invalid("event must end after it starts")
	}
	if e.Color != "" && !model.ValidColor(e.Color) {
		return invalid("unknown colour " + e.Color)
	}
	return nil
}

// AddCalendarEvent appends e. Events are not deduplicated by id; an empty id
// is replaced by a fresh one.
func (s *Store) AddCalendarEvent(ctx context.Context, e model.CalendarEvent) (model.CalendarEvent, error) {
	if err := validateEvent(e); err != nil {
		return model.CalendarEvent{}, err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Color == "" {
		e.Color = model.DefaultEventColor
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := append(slices.Clone(s.events), e)
	if err := s.persist(ctx, change{kv.KeyCalendarEvents, next, s.events}); err != nil {
		return model.CalendarEvent{}, err
	}
	s.events = next
	logger.Debug("Calendar event added", logger.F("id", e.ID), logger.F("from_timer", e.CreatedFromTimer))
	return e, nil
}

// DeleteCalendarEvent removes every event with id.
func (s *Store) DeleteCalendarEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := slices.DeleteFunc(slices.Clone(s.events), func(e model.CalendarEvent) bool { return e.ID == id })
	if len(next) == len(s.events) {
		return notFound("event", id)
	}
	if err := s.persist(ctx, change{kv.KeyCalendarEvents, next, s.events}); err != nil {
		return err
	}
	s.events = next
	return nil
}

// UpdateCalendarEvent applies patch to the first event with id, keeping its
// identity and position.
func (s *Store) UpdateCalendarEvent(ctx context.Context, id string, patch model.EventPatch) (model.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.events, func(e model.CalendarEvent) bool { return e.ID == id })
	if i < 0 {
		return model.CalendarEvent{}, notFound("event", id)
	}
	updated := patch.Apply(s.events[i])
	if updated.Color == "" {
		updated.Color = model.DefaultEventColor
	}
	if err := validateEvent(updated); err != nil {
		return model.CalendarEvent{}, err
	}
	next := slices.Clone(s.events)
	next[i] = updated
	if err := s.persist(ctx, change{kv.KeyCalendarEvents, next, s.events}); err != nil {
		return model.CalendarEvent{}, err
	}
	s.events = next
	return updated, nil
}
