package store

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/existflow/flownote/internal/kv"
	"github.com/existflow/flownote/internal/model"
)

const untitledNote = "Untitled"

// Notes returns all notes.
func (s *Store) Notes() []model.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.notes)
}

func (s *Store) noteIndex(id string) int {
	return slices.IndexFunc(s.notes, func(n model.Note) bool { return n.ID == id })
}

func (s *Store) saveNotes(ctx context.Context, next []model.Note) error {
	if err := s.persist(ctx, change{kv.KeyNotes, next, s.notes}); err != nil {
		return err
	}
	s.notes = next
	return nil
}

// AddNote creates a note. A blank title becomes "Untitled".
func (s *Store) AddNote(ctx context.Context, title, content string) (model.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = untitledNote
	}
	now := s.nowMillis()
	n := model.Note{ID: uuid.NewString(), Title: title, Content: content, CreatedAt: now, UpdatedAt: now}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.saveNotes(ctx, append(slices.Clone(s.notes), n)); err != nil {
		return model.Note{}, err
	}
	return n, nil
}

// UpdateNote replaces the non-nil fields of note id.
func (s *Store) UpdateNote(ctx context.Context, id string, title, content *string) (model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.noteIndex(id)
	if i < 0 {
		return model.Note{}, notFound("note", id)
	}
	next := slices.Clone(s.notes)
	if title != nil {
		next[i].Title = strings.TrimSpace(*title)
		if next[i].Title == "" {
			next[i].Title = untitledNote
		}
	}
	if content != nil {
		next[i].Content = *content
	}
	next[i].UpdatedAt = s.nowMillis()
	if err := s.saveNotes(ctx, next); err != nil {
		return model.Note{}, err
	}
	return next[i], nil
}

// DeleteNote removes note id.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.noteIndex(id)
	if i < 0 {
		return notFound("note", id)
	}
	return s.saveNotes(ctx, slices.Delete(slices.Clone(s.notes), i, i+1))
}

// Journals returns journal entries sorted by date.
func (s *Store) Journals() []model.Journal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := slices.Clone(s.journals)
	slices.SortFunc(out, func(a, b model.Journal) int { return strings.Compare(a.Date, b.Date) })
	return out
}

// SaveJournal writes the entry for date, replacing an existing one.
func (s *Store) SaveJournal(ctx context.Context, date, content, mood string) (model.Journal, error) {
	if err := parseDate(date); err != nil {
		return model.Journal{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.journals)
	i := slices.IndexFunc(next, func(j model.Journal) bool { return j.Date == date })
	var j model.Journal
	if i < 0 {
		j = model.Journal{ID: uuid.NewString(), Date: date, Content: content, Mood: mood}
		next = append(next, j)
	} else {
		next[i].Content = content
		next[i].Mood = mood
		j = next[i]
	}
	if err := s.persist(ctx, change{kv.KeyJournals, next, s.journals}); err != nil {
		return model.Journal{}, err
	}
	s.journals = next
	return j, nil
}
